// ABOUTME: Filesystem-backed diary feed using fsnotify.
// ABOUTME: Re-reads the diary store and pushes a snapshot whenever entry files change.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/2389-research/daybook/internal/storage"
)

// DefaultDebounce coalesces bursts of filesystem events into one push.
const DefaultDebounce = 150 * time.Millisecond

// WatchFeed pushes snapshots of a DiaryStore whenever its files change.
type WatchFeed struct {
	store    storage.DiaryStore
	opts     storage.ListOptions
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// WatchOption configures a WatchFeed.
type WatchOption func(*WatchFeed)

// WithDebounce overrides the event coalescing window.
func WithDebounce(d time.Duration) WatchOption {
	return func(f *WatchFeed) {
		f.debounce = d
	}
}

// WithListOptions limits the snapshot that is pushed.
func WithListOptions(opts storage.ListOptions) WatchOption {
	return func(f *WatchFeed) {
		f.opts = opts
	}
}

// NewWatchFeed creates a feed over store. The store root is created on Start if missing.
func NewWatchFeed(store storage.DiaryStore, logger *slog.Logger, opts ...WatchOption) *WatchFeed {
	f := &WatchFeed{
		store:    store,
		debounce: DefaultDebounce,
		logger:   logger.With("feed", "watch"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start watches the store root and its date directories, then pushes an initial snapshot.
func (f *WatchFeed) Start(ctx context.Context, onUpdate UpdateFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher != nil {
		return ErrAlreadyStarted
	}

	root := f.store.Root()
	if err := os.MkdirAll(root, 0750); err != nil {
		return fmt.Errorf("failed to create diary root: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := addTree(w, root); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	f.watcher = w
	f.cancel = cancel
	f.done = make(chan struct{})

	go f.run(runCtx, w, onUpdate, f.done)
	return nil
}

// Stop closes the watcher and waits for the event loop to exit.
func (f *WatchFeed) Stop() error {
	f.mu.Lock()
	w, cancel, done := f.watcher, f.cancel, f.done
	f.watcher, f.cancel, f.done = nil, nil, nil
	f.mu.Unlock()

	if w == nil {
		return nil
	}

	cancel()
	err := w.Close()
	<-done
	return err
}

func (f *WatchFeed) run(ctx context.Context, w *fsnotify.Watcher, onUpdate UpdateFunc, done chan struct{}) {
	defer close(done)

	f.push(ctx, onUpdate)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w, event.Name); err != nil {
						f.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					pending = time.After(f.debounce)
					continue
				}
			}
			if filepath.Ext(event.Name) == ".md" {
				pending = time.After(f.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			// Keep running; the next event triggers a fresh read anyway.
			f.logger.Warn("diary watch error", "error", err)

		case <-pending:
			pending = nil
			f.push(ctx, onUpdate)
		}
	}
}

func (f *WatchFeed) push(ctx context.Context, onUpdate UpdateFunc) {
	entries, err := f.store.ListEntries(f.opts)
	if err != nil {
		f.logger.Error("failed to read diary", "error", err)
		return
	}
	if ctx.Err() != nil {
		return
	}
	f.logger.Debug("pushing snapshot", "entries", len(entries))
	onUpdate(entries)
}

// addTree watches dir and every directory below it.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}
