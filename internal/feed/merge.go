// ABOUTME: Combines several diary feeds into a single snapshot stream.
// ABOUTME: Keeps the latest snapshot per source and pushes the de-duplicated union.
package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
)

// MergeFeed fans in multiple feeds. When two sources carry the same entry
// ID, the earlier source in the list wins.
type MergeFeed struct {
	sources []Feed

	mu       sync.Mutex
	latest   [][]*models.DiaryEntry
	started  []Feed
	running  bool
	onUpdate UpdateFunc
	seq      uint64

	// deliverMu orders callbacks without holding mu, so onUpdate may call Stop.
	deliverMu sync.Mutex
	delivered uint64
}

// NewMergeFeed creates a feed over sources, in priority order.
func NewMergeFeed(sources ...Feed) *MergeFeed {
	return &MergeFeed{sources: sources}
}

// Start starts every source. If any source fails, the ones already started are stopped.
func (m *MergeFeed) Start(ctx context.Context, onUpdate UpdateFunc) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.running = true
	m.latest = make([][]*models.DiaryEntry, len(m.sources))
	m.started = nil
	m.onUpdate = onUpdate
	m.seq = 0
	m.mu.Unlock()

	m.deliverMu.Lock()
	m.delivered = 0
	m.deliverMu.Unlock()

	for i, src := range m.sources {
		if err := src.Start(ctx, m.receiver(i)); err != nil {
			_ = m.Stop()
			return err
		}
		m.mu.Lock()
		m.started = append(m.started, src)
		m.mu.Unlock()
	}
	return nil
}

// Stop stops all started sources and returns their joined errors.
func (m *MergeFeed) Stop() error {
	m.mu.Lock()
	started := m.started
	m.started = nil
	m.running = false
	m.mu.Unlock()

	var errs []error
	for _, src := range started {
		if err := src.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MergeFeed) receiver(i int) UpdateFunc {
	return func(entries []*models.DiaryEntry) {
		m.mu.Lock()
		if !m.running {
			m.mu.Unlock()
			return
		}
		m.latest[i] = clone(entries)
		merged := m.merge()
		onUpdate := m.onUpdate
		m.seq++
		seq := m.seq
		m.mu.Unlock()

		m.deliverMu.Lock()
		defer m.deliverMu.Unlock()
		// A newer merge already went out; this one is stale.
		if seq <= m.delivered {
			return
		}
		m.mu.Lock()
		running := m.running
		m.mu.Unlock()
		if !running {
			return
		}
		m.delivered = seq
		onUpdate(merged)
	}
}

func (m *MergeFeed) merge() []*models.DiaryEntry {
	seen := make(map[string]bool)
	var out []*models.DiaryEntry
	for _, snapshot := range m.latest {
		for _, e := range snapshot {
			if seen[e.Key()] {
				continue
			}
			seen[e.Key()] = true
			out = append(out, e)
		}
	}
	storage.SortNewestFirst(out)
	return out
}
