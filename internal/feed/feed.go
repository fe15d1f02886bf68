// ABOUTME: Live diary feed abstraction delivering full entry snapshots.
// ABOUTME: Defines the Feed start/stop contract and a scoped Lease with guaranteed release.
package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/2389-research/daybook/internal/models"
)

// ErrAlreadyStarted is returned when Start is called on a running feed.
var ErrAlreadyStarted = errors.New("feed already started")

// UpdateFunc receives a full snapshot of the entry collection on every push.
// Implementations must not retain or mutate the slice after returning.
type UpdateFunc func(entries []*models.DiaryEntry)

// Feed is a push-based source of diary snapshots.
type Feed interface {
	// Start begins delivering snapshots to onUpdate. It may deliver from
	// another goroutine.
	Start(ctx context.Context, onUpdate UpdateFunc) error

	// Stop halts delivery and releases resources. No pushes happen after
	// Stop returns.
	Stop() error
}

// Lease is a scoped acquisition of a running feed.
type Lease struct {
	mu       sync.Mutex
	feed     Feed
	released bool
}

// Acquire starts f and returns a lease whose Release stops it exactly once.
// Pushes that arrive after Release are dropped.
func Acquire(ctx context.Context, f Feed, onUpdate UpdateFunc) (*Lease, error) {
	l := &Lease{feed: f}

	guarded := func(entries []*models.DiaryEntry) {
		l.mu.Lock()
		released := l.released
		l.mu.Unlock()
		if released {
			return
		}
		onUpdate(entries)
	}

	if err := f.Start(ctx, guarded); err != nil {
		return nil, err
	}
	return l, nil
}

// Release stops the feed. Repeated calls and calls on a nil lease are no-ops.
func (l *Lease) Release() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return nil
	}
	l.released = true
	l.mu.Unlock()

	return l.feed.Stop()
}

// Released reports whether Release has been called.
func (l *Lease) Released() bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released
}

// clone copies a snapshot so subscribers never share backing arrays.
func clone(entries []*models.DiaryEntry) []*models.DiaryEntry {
	out := make([]*models.DiaryEntry, len(entries))
	copy(out, entries)
	return out
}
