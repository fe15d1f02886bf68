// ABOUTME: Markdown-based diary storage.
// ABOUTME: Stores entries as markdown files with YAML frontmatter in date-based directories.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/daybook/internal/models"
)

const dateDirLayout = "2006-01-02"

// DiaryMDStore stores diary entries as markdown files under a single root.
type DiaryMDStore struct {
	root string
}

// diaryFrontmatter is the YAML frontmatter for diary entry files.
type diaryFrontmatter struct {
	ID     string `yaml:"id"`
	Date   string `yaml:"date"`
	Author string `yaml:"author,omitempty"`
	Mood   string `yaml:"mood,omitempty"`
}

// NewDiaryMDStore creates a diary store rooted at the given path.
func NewDiaryMDStore(root string) (*DiaryMDStore, error) {
	if root == "" {
		return nil, fmt.Errorf("diary root is required")
	}
	return &DiaryMDStore{root: root}, nil
}

// Root returns the directory entries are stored under.
func (s *DiaryMDStore) Root() string {
	return s.root
}

// WriteEntry persists a diary entry under its creation date.
func (s *DiaryMDStore) WriteEntry(entry *models.DiaryEntry) error {
	if !models.IsValidMood(entry.Mood) {
		return fmt.Errorf("unknown mood %q", entry.Mood)
	}

	dateDir := entry.CreatedAt.Format(dateDirLayout)
	timeStr := entry.CreatedAt.Format("15-04-05-000000")
	shortID := entry.ID.String()[:8]
	path := filepath.Join(s.root, dateDir, timeStr+"-"+shortID+".md")

	fm := diaryFrontmatter{
		ID:     entry.ID.String(),
		Date:   formatTime(entry.CreatedAt),
		Author: entry.Author,
		Mood:   entry.Mood,
	}

	body := strings.TrimRight(entry.Content, "\n") + "\n"
	content, err := renderFrontmatter(fm, body)
	if err != nil {
		return fmt.Errorf("failed to render frontmatter: %w", err)
	}

	if err := atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	entry.FilePath = path
	if entry.Source == "" {
		entry.Source = models.SourceLocal
	}
	return nil
}

// ReadEntry reads a diary entry from the given file path.
// The path must be within the diary root.
func (s *DiaryMDStore) ReadEntry(path string) (*models.DiaryEntry, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	absRoot, _ := filepath.Abs(s.root)
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return nil, fmt.Errorf("path %q is outside the diary root", path)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}

	return parseDiaryEntry(absPath, string(data))
}

// ListEntries lists diary entries, most recent first.
func (s *DiaryMDStore) ListEntries(opts ListOptions) ([]*models.DiaryEntry, error) {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return nil, nil
	}

	dateDirs, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.root, err)
	}

	var cutoff time.Time
	if opts.Days > 0 {
		now := time.Now()
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -opts.Days)
	}

	var entries []*models.DiaryEntry
	for _, dateDir := range dateDirs {
		if !dateDir.IsDir() {
			continue
		}

		if !cutoff.IsZero() {
			dirDate, err := time.ParseInLocation(dateDirLayout, dateDir.Name(), cutoff.Location())
			if err != nil {
				continue
			}
			if dirDate.Before(cutoff) {
				continue
			}
		}

		dirPath := filepath.Join(s.root, dateDir.Name())
		files, err := os.ReadDir(dirPath)
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
				continue
			}

			filePath := filepath.Join(dirPath, file.Name())
			data, err := os.ReadFile(filePath)
			if err != nil {
				continue
			}

			entry, err := parseDiaryEntry(filePath, string(data))
			if err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	SortNewestFirst(entries)

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}

// Close releases any resources held by the store.
func (s *DiaryMDStore) Close() error {
	return nil
}

// SortNewestFirst orders entries by creation time descending, breaking ties by ID.
func SortNewestFirst(entries []*models.DiaryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID.String() < entries[j].ID.String()
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// parseDiaryEntry parses a markdown file into a DiaryEntry.
func parseDiaryEntry(path string, content string) (*models.DiaryEntry, error) {
	yamlStr, body := parseFrontmatter(content)
	if yamlStr == "" {
		return nil, fmt.Errorf("no frontmatter found in %s", path)
	}

	var fm diaryFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in frontmatter: %w", err)
	}

	createdAt, err := parseTime(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date in frontmatter: %w", err)
	}

	return &models.DiaryEntry{
		ID:        id,
		CreatedAt: createdAt,
		Author:    fm.Author,
		Mood:      fm.Mood,
		Content:   strings.TrimSpace(body),
		FilePath:  path,
		Source:    models.SourceLocal,
	}, nil
}
