// ABOUTME: Interval-polling diary feed for sources without change notifications.
// ABOUTME: Used to follow the remote diary API; keeps the last snapshot on fetch errors.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/2389-research/daybook/internal/models"
)

// FetchFunc loads a full snapshot from a source.
type FetchFunc func(ctx context.Context) ([]*models.DiaryEntry, error)

// PollFeed calls a FetchFunc immediately and then on every interval.
type PollFeed struct {
	fetch    FetchFunc
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPollFeed creates a feed that polls fetch every interval.
func NewPollFeed(fetch FetchFunc, interval time.Duration, logger *slog.Logger) *PollFeed {
	return &PollFeed{
		fetch:    fetch,
		interval: interval,
		logger:   logger.With("feed", "poll"),
	}
}

// Start begins polling in the background.
func (f *PollFeed) Start(ctx context.Context, onUpdate UpdateFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.done = make(chan struct{})

	go f.run(runCtx, onUpdate, f.done)
	return nil
}

// Stop cancels polling and waits for any in-flight fetch to return.
func (f *PollFeed) Stop() error {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (f *PollFeed) run(ctx context.Context, onUpdate UpdateFunc, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		f.poll(ctx, onUpdate)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (f *PollFeed) poll(ctx context.Context, onUpdate UpdateFunc) {
	entries, err := f.fetch(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		f.logger.Warn("poll failed", "error", err)
		return
	}
	onUpdate(entries)
}
