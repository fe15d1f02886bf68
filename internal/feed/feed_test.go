// ABOUTME: Tests for the feed lease lifecycle.
// ABOUTME: Uses a manually driven feed to check start, release, and late pushes.
package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/daybook/internal/models"
)

// manualFeed is a Feed whose pushes are driven by the test.
type manualFeed struct {
	mu       sync.Mutex
	onUpdate UpdateFunc
	starts   int
	stops    int
	startErr error
}

func (f *manualFeed) Start(_ context.Context, onUpdate UpdateFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	f.onUpdate = onUpdate
	return nil
}

func (f *manualFeed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *manualFeed) push(entries ...*models.DiaryEntry) {
	f.mu.Lock()
	fn := f.onUpdate
	f.mu.Unlock()
	if fn != nil {
		fn(entries)
	}
}

func (f *manualFeed) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts, f.stops
}

func newEntry(ts time.Time) *models.DiaryEntry {
	return &models.DiaryEntry{ID: uuid.New(), CreatedAt: ts}
}

// recorder collects pushed snapshots.
type recorder struct {
	mu        sync.Mutex
	snapshots [][]*models.DiaryEntry
}

func (r *recorder) update(entries []*models.DiaryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, entries)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recorder) last() []*models.DiaryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func TestAcquireStartsFeed(t *testing.T) {
	f := &manualFeed{}
	rec := &recorder{}

	lease, err := Acquire(context.Background(), f, rec.update)
	require.NoError(t, err)
	require.NotNil(t, lease)

	starts, _ := f.counts()
	assert.Equal(t, 1, starts)

	f.push(newEntry(time.Now()))
	assert.Equal(t, 1, rec.count())
}

func TestAcquireStartError(t *testing.T) {
	f := &manualFeed{startErr: errors.New("boom")}
	lease, err := Acquire(context.Background(), f, func([]*models.DiaryEntry) {})
	assert.Error(t, err)
	assert.Nil(t, lease)
}

func TestReleaseStopsExactlyOnce(t *testing.T) {
	f := &manualFeed{}
	lease, err := Acquire(context.Background(), f, func([]*models.DiaryEntry) {})
	require.NoError(t, err)

	require.NoError(t, lease.Release())
	require.NoError(t, lease.Release())
	require.NoError(t, lease.Release())

	_, stops := f.counts()
	assert.Equal(t, 1, stops)
	assert.True(t, lease.Released())
}

func TestReleaseDropsLatePushes(t *testing.T) {
	f := &manualFeed{}
	rec := &recorder{}
	lease, err := Acquire(context.Background(), f, rec.update)
	require.NoError(t, err)

	f.push(newEntry(time.Now()))
	require.NoError(t, lease.Release())
	f.push(newEntry(time.Now()))

	assert.Equal(t, 1, rec.count())
}

func TestNilLeaseRelease(t *testing.T) {
	var lease *Lease
	assert.NotPanics(t, func() {
		assert.NoError(t, lease.Release())
	})
	assert.True(t, lease.Released())
}

func TestConcurrentRelease(t *testing.T) {
	f := &manualFeed{}
	lease, err := Acquire(context.Background(), f, func([]*models.DiaryEntry) {})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lease.Release()
		}()
	}
	wg.Wait()

	_, stops := f.counts()
	assert.Equal(t, 1, stops)
}
