// ABOUTME: Converts an entry collection into timeline render rows.
// ABOUTME: Each row pairs an entry with its divider visibility and stable key.
package timeline

import (
	"time"

	"github.com/2389-research/daybook/internal/models"
)

// Row is one rendered item of the timeline.
type Row struct {
	Key         string
	ShowDivider bool
	Day         time.Time
	Entry       *models.DiaryEntry
}

// BuildRows computes render rows in source order.
func BuildRows(entries []*models.DiaryEntry, loc *time.Location) []Row {
	rows := make([]Row, 0, len(entries))
	for i, entry := range entries {
		var prev time.Time
		if i > 0 {
			prev = entries[i-1].CreatedAt
		}
		rows = append(rows, Row{
			Key:         entry.Key(),
			ShowDivider: ShowDateDivider(i, prev, entry.CreatedAt, loc),
			Day:         Day(entry.CreatedAt, loc),
			Entry:       entry,
		})
	}
	return rows
}

// DuplicateKeys returns the keys that occur more than once, in first-seen order.
func DuplicateKeys(entries []*models.DiaryEntry) []string {
	seen := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		k := e.Key()
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}
