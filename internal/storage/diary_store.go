// ABOUTME: Interface definition for diary entry storage.
// ABOUTME: Defines the contract for reading, writing, and listing diary entries.
package storage

import (
	"github.com/2389-research/daybook/internal/models"
)

// ListOptions configures filtering and pagination for listing entries.
type ListOptions struct {
	Limit int // 0 = no limit
	Days  int // how far back to look, 0 = no limit
}

// DiaryStore defines operations for diary entry persistence.
type DiaryStore interface {
	// WriteEntry persists a diary entry and sets its FilePath.
	WriteEntry(entry *models.DiaryEntry) error

	// ReadEntry reads a diary entry from the given file path.
	ReadEntry(path string) (*models.DiaryEntry, error)

	// ListEntries lists diary entries, most recent first.
	ListEntries(opts ListOptions) ([]*models.DiaryEntry, error)

	// Root returns the directory entries are stored under.
	Root() string

	// Close releases any resources held by the store.
	Close() error
}
