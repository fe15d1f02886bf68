// ABOUTME: Tests for diary text search.
// ABOUTME: Covers case folding, mood filtering, and limits.
package storage

import (
	"testing"

	"github.com/2389-research/daybook/internal/models"
)

func TestSearchEntries(t *testing.T) {
	entries := []*models.DiaryEntry{
		models.NewDiaryEntry("moon", "happy", "Sunny walk in the PARK"),
		models.NewDiaryEntry("moon", "sad", "Rain all day, stayed in"),
		models.NewDiaryEntry("star", "happy", "Picnic at the park with friends"),
	}

	if got := SearchEntries(entries, "park", "", 0); len(got) != 2 {
		t.Errorf("expected 2 matches for park, got %d", len(got))
	}
	if got := SearchEntries(entries, "park", "", 1); len(got) != 1 || got[0] != entries[0] {
		t.Error("expected limit to keep the first match in order")
	}
	if got := SearchEntries(entries, "day", "sad", 0); len(got) != 1 || got[0] != entries[1] {
		t.Error("expected mood filter to restrict matches")
	}
	if got := SearchEntries(entries, "park", "sad", 0); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
	if got := SearchEntries(entries, "STAR", "", 0); len(got) != 1 {
		t.Error("expected author match")
	}
}
