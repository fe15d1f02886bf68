// ABOUTME: Tests for the polling feed.
// ABOUTME: Uses fake fetch functions to check intervals, errors, and cancellation.
package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/models"
)

func TestPollFeedPushesImmediatelyAndOnInterval(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]*models.DiaryEntry, error) {
		calls.Add(1)
		return []*models.DiaryEntry{newEntry(time.Now())}, nil
	}

	f := NewPollFeed(fetch, 20*time.Millisecond, logging.Discard())
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	defer func() { _ = f.Stop() }()

	require.Eventually(t, func() bool { return rec.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestPollFeedKeepsSnapshotOnError(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]*models.DiaryEntry, error) {
		if calls.Add(1) == 1 {
			return []*models.DiaryEntry{newEntry(time.Now())}, nil
		}
		return nil, errors.New("offline")
	}

	f := NewPollFeed(fetch, 10*time.Millisecond, logging.Discard())
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))

	require.Eventually(t, func() bool { return calls.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, f.Stop())

	assert.Equal(t, 1, rec.count())
}

func TestPollFeedStopCancelsFetch(t *testing.T) {
	started := make(chan struct{})
	fetch := func(ctx context.Context) ([]*models.DiaryEntry, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	f := NewPollFeed(fetch, time.Hour, logging.Discard())
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	<-started

	done := make(chan struct{})
	go func() {
		_ = f.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Zero(t, rec.count())
}

func TestPollFeedDoubleStart(t *testing.T) {
	fetch := func(ctx context.Context) ([]*models.DiaryEntry, error) { return nil, nil }
	f := NewPollFeed(fetch, time.Hour, logging.Discard())
	require.NoError(t, f.Start(context.Background(), func([]*models.DiaryEntry) {}))
	defer func() { _ = f.Stop() }()

	assert.ErrorIs(t, f.Start(context.Background(), func([]*models.DiaryEntry) {}), ErrAlreadyStarted)
}
