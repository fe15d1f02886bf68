// ABOUTME: Tests for the filesystem watch feed.
// ABOUTME: Writes real entries into a temp diary and waits for pushes.
package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
)

func newWatchStore(t *testing.T) *storage.DiaryMDStore {
	t.Helper()
	store, err := storage.NewDiaryMDStore(filepath.Join(t.TempDir(), "diary"))
	require.NoError(t, err)
	return store
}

func TestWatchFeedInitialSnapshot(t *testing.T) {
	store := newWatchStore(t)
	require.NoError(t, store.WriteEntry(models.NewDiaryEntry("me", "calm", "existing")))

	f := NewWatchFeed(store, logging.Discard(), WithDebounce(10*time.Millisecond))
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	defer func() { _ = f.Stop() }()

	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, "existing", rec.last()[0].Content)
}

func TestWatchFeedCreatesMissingRoot(t *testing.T) {
	store := newWatchStore(t)
	f := NewWatchFeed(store, logging.Discard())
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	defer func() { _ = f.Stop() }()

	_, err := os.Stat(store.Root())
	assert.NoError(t, err)
	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, rec.last())
}

func TestWatchFeedPushesOnNewEntry(t *testing.T) {
	store := newWatchStore(t)
	f := NewWatchFeed(store, logging.Discard(), WithDebounce(10*time.Millisecond))
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	defer func() { _ = f.Stop() }()

	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// Lands in a brand-new date directory, which the feed must start watching.
	require.NoError(t, store.WriteEntry(models.NewDiaryEntry("me", "happy", "first")))
	require.Eventually(t, func() bool { return len(rec.last()) == 1 }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, store.WriteEntry(models.NewDiaryEntry("me", "happy", "second")))
	require.Eventually(t, func() bool { return len(rec.last()) == 2 }, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, "second", rec.last()[0].Content)
}

func TestWatchFeedNoPushAfterStop(t *testing.T) {
	store := newWatchStore(t)
	f := NewWatchFeed(store, logging.Discard(), WithDebounce(10*time.Millisecond))
	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, f.Stop())
	before := rec.count()

	require.NoError(t, store.WriteEntry(models.NewDiaryEntry("me", "", "after stop")))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, rec.count())
}

func TestWatchFeedDoubleStart(t *testing.T) {
	store := newWatchStore(t)
	f := NewWatchFeed(store, logging.Discard())
	require.NoError(t, f.Start(context.Background(), func([]*models.DiaryEntry) {}))
	defer func() { _ = f.Stop() }()

	assert.ErrorIs(t, f.Start(context.Background(), func([]*models.DiaryEntry) {}), ErrAlreadyStarted)
}

func TestWatchFeedStopWithoutStart(t *testing.T) {
	f := NewWatchFeed(newWatchStore(t), logging.Discard())
	assert.NoError(t, f.Stop())
}

func TestWatchFeedRestart(t *testing.T) {
	store := newWatchStore(t)
	f := NewWatchFeed(store, logging.Discard())

	require.NoError(t, f.Start(context.Background(), func([]*models.DiaryEntry) {}))
	require.NoError(t, f.Stop())

	rec := &recorder{}
	require.NoError(t, f.Start(context.Background(), rec.update))
	defer func() { _ = f.Stop() }()
	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
