// ABOUTME: Bridges a push-based diary feed into bubbletea messages.
// ABOUTME: Holds the feed lease and delivers only the latest snapshot to the update loop.
package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/daybook/internal/feed"
	"github.com/2389-research/daybook/internal/models"
)

// snapshotMsg carries a full entry collection pushed by the feed.
type snapshotMsg struct {
	entries []*models.DiaryEntry
}

// feedStartedMsg reports the outcome of acquiring the feed.
type feedStartedMsg struct {
	err error
}

// subscription is shared by pointer across TimelineModel copies, the same
// way SetupModel shares its cancel func.
type subscription struct {
	mu      sync.Mutex
	lease   *feed.Lease
	updates chan []*models.DiaryEntry
	done    chan struct{}
	started bool
	closed  bool
}

func newSubscription() *subscription {
	return &subscription{
		updates: make(chan []*models.DiaryEntry, 1),
		done:    make(chan struct{}),
	}
}

// start acquires f once. Later calls are no-ops.
func (s *subscription) start(ctx context.Context, f feed.Feed) error {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	lease, err := feed.Acquire(ctx, f, s.deliver)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return lease.Release()
	}
	s.lease = lease
	s.mu.Unlock()
	return nil
}

// deliver replaces any undelivered snapshot with the newest one.
func (s *subscription) deliver(entries []*models.DiaryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- entries
}

// wait blocks until the next snapshot or until the subscription closes.
func (s *subscription) wait() tea.Msg {
	select {
	case entries := <-s.updates:
		return snapshotMsg{entries: entries}
	case <-s.done:
		return nil
	}
}

func (s *subscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *subscription) hasLease() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lease != nil
}

// close releases the lease if one was acquired. Safe to call repeatedly.
func (s *subscription) close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	lease := s.lease
	s.lease = nil
	s.mu.Unlock()

	return lease.Release()
}
