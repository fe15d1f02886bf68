// ABOUTME: Unit tests for the feed-to-bubbletea subscription bridge.
// ABOUTME: Covers latest-value delivery, single acquisition, and teardown races.
package tui

import (
	"context"
	"testing"
	"time"

	"github.com/2389-research/daybook/internal/models"
)

func TestSubscription_KeepsLatestSnapshot(t *testing.T) {
	s := newSubscription()
	first := sampleEntries()
	second := first[:1]

	s.deliver(first)
	s.deliver(second)

	msg, ok := s.wait().(snapshotMsg)
	if !ok {
		t.Fatal("expected snapshotMsg")
	}
	if len(msg.entries) != 1 {
		t.Errorf("expected only the newest snapshot, got %d entries", len(msg.entries))
	}
}

func TestSubscription_WaitUnblocksOnClose(t *testing.T) {
	s := newSubscription()
	done := make(chan any)
	go func() { done <- s.wait() }()

	time.Sleep(10 * time.Millisecond)
	if err := s.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("expected nil msg after close, got %#v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("wait did not unblock on close")
	}
}

func TestSubscription_DeliverAfterCloseDropped(t *testing.T) {
	s := newSubscription()
	_ = s.close()
	s.deliver([]*models.DiaryEntry{entryAt(time.Now(), "", "x")})
	if len(s.updates) != 0 {
		t.Error("expected delivery after close to be dropped")
	}
}

func TestSubscription_StartAfterCloseDoesNotAcquire(t *testing.T) {
	f := &fakeFeed{}
	s := newSubscription()
	_ = s.close()

	if err := s.start(context.Background(), f); err != nil {
		t.Fatalf("start: %v", err)
	}
	if starts, _ := f.counts(); starts != 0 {
		t.Errorf("expected no acquisition after close, got %d", starts)
	}
}

func TestSubscription_StartOnce(t *testing.T) {
	f := &fakeFeed{}
	s := newSubscription()
	for i := 0; i < 3; i++ {
		if err := s.start(context.Background(), f); err != nil {
			t.Fatalf("start: %v", err)
		}
	}
	if starts, _ := f.counts(); starts != 1 {
		t.Errorf("expected a single acquisition, got %d", starts)
	}
	_ = s.close()
	_ = s.close()
	if _, stops := f.counts(); stops != 1 {
		t.Errorf("expected a single release, got %d", stops)
	}
}
