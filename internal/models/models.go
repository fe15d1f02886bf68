// ABOUTME: Core data models for diary entries and moods.
// ABOUTME: Provides constructor functions and type definitions for daybook storage.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// DiaryEntry represents a single diary record.
type DiaryEntry struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Author    string
	Mood      string // one of ValidMoods, may be empty
	Content   string // markdown, opaque to the timeline
	FilePath  string
	Source    string // "local" or "remote"
}

// ValidMoods lists the allowed moods in display order.
var ValidMoods = []string{
	"happy",
	"calm",
	"tired",
	"anxious",
	"sad",
	"angry",
}

var moodEmoji = map[string]string{
	"happy":   "😊",
	"calm":    "😌",
	"tired":   "😪",
	"anxious": "😟",
	"sad":     "😢",
	"angry":   "😠",
}

// IsValidMood returns true if the given mood is known. The empty mood is valid.
func IsValidMood(mood string) bool {
	if mood == "" {
		return true
	}
	for _, m := range ValidMoods {
		if m == mood {
			return true
		}
	}
	return false
}

// MoodEmoji returns the emoji for a mood, or an empty string for unknown moods.
func MoodEmoji(mood string) string {
	return moodEmoji[mood]
}

// NormalizeMood lowercases and trims a user-supplied mood.
func NormalizeMood(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

// NewDiaryEntry creates a local diary entry with generated UUID and timestamp.
func NewDiaryEntry(author, mood, content string) *DiaryEntry {
	return &DiaryEntry{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Author:    author,
		Mood:      mood,
		Content:   content,
		Source:    SourceLocal,
	}
}

// Key returns the stable render key for the entry.
func (e *DiaryEntry) Key() string {
	return e.ID.String()
}

// Preview returns the first non-empty line of the content.
func (e *DiaryEntry) Preview() string {
	for _, line := range strings.Split(e.Content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#>-* "))
		if line != "" {
			return line
		}
	}
	return ""
}
