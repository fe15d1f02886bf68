// ABOUTME: Case-insensitive text search over diary entries.
// ABOUTME: Shared by the CLI search command and the MCP search tool.
package storage

import (
	"strings"

	"github.com/2389-research/daybook/internal/models"
)

// SearchEntries returns entries whose content or author contains query,
// keeping input order. A non-empty mood restricts matches to that mood.
// limit <= 0 means no limit.
func SearchEntries(entries []*models.DiaryEntry, query, mood string, limit int) []*models.DiaryEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []*models.DiaryEntry
	for _, e := range entries {
		if limit > 0 && len(results) >= limit {
			break
		}
		if mood != "" && e.Mood != mood {
			continue
		}
		if strings.Contains(strings.ToLower(e.Content), q) || strings.Contains(strings.ToLower(e.Author), q) {
			results = append(results, e)
		}
	}
	return results
}
