// ABOUTME: Tests for building timeline render rows.
// ABOUTME: Checks divider placement, keys, source order, and duplicate detection.
package timeline

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/daybook/internal/models"
)

func entryAt(ts time.Time) *models.DiaryEntry {
	return &models.DiaryEntry{ID: uuid.New(), CreatedAt: ts, Content: ts.String()}
}

func TestBuildRows_Empty(t *testing.T) {
	assert.Empty(t, BuildRows(nil, time.UTC))
}

func TestBuildRows_DividersAndKeys(t *testing.T) {
	entries := []*models.DiaryEntry{
		entryAt(at(3, 21)),
		entryAt(at(3, 8)),
		entryAt(at(2, 22)),
		entryAt(at(1, 7)),
		entryAt(at(1, 6)),
	}

	rows := BuildRows(entries, time.UTC)
	require.Len(t, rows, len(entries))

	var dividers []bool
	for i, r := range rows {
		dividers = append(dividers, r.ShowDivider)
		assert.Equal(t, entries[i].ID.String(), r.Key)
		assert.Same(t, entries[i], r.Entry)
		assert.Equal(t, Day(entries[i].CreatedAt, time.UTC), r.Day)
	}
	assert.Equal(t, []bool{true, false, true, true, false}, dividers)
}

func TestBuildRows_PreservesSourceOrder(t *testing.T) {
	entries := []*models.DiaryEntry{entryAt(at(1, 9)), entryAt(at(3, 9)), entryAt(at(2, 9))}
	rows := BuildRows(entries, time.UTC)
	for i := range entries {
		assert.Same(t, entries[i], rows[i].Entry)
	}
}

func TestDuplicateKeys(t *testing.T) {
	a := entryAt(at(1, 9))
	b := entryAt(at(1, 10))
	dup := &models.DiaryEntry{ID: a.ID, CreatedAt: at(1, 11)}

	assert.Empty(t, DuplicateKeys([]*models.DiaryEntry{a, b}))
	assert.Equal(t, []string{a.ID.String()}, DuplicateKeys([]*models.DiaryEntry{a, b, dup, dup}))
}
