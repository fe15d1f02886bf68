// ABOUTME: MCP tool implementations for diary operations.
// ABOUTME: Registers write_diary_entry, list_diary_entries, search_diary, read_diary_entry.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
)

const timestampLayout = "2006-01-02 15:04:05"

func (s *Server) registerDiaryTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "write_diary_entry",
		Description: "Write a new entry to the diary. Content is markdown. Mood is optional and must be one of: " + strings.Join(models.ValidMoods, ", ") + ".",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {"type": "string", "description": "Entry text, markdown allowed"},
				"mood": {"type": "string", "enum": ["happy", "calm", "tired", "anxious", "sad", "angry"], "description": "How the writer is feeling"}
			},
			"required": ["content"]
		}`),
	}, s.handleWriteDiaryEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_diary_entries",
		Description: "List recent diary entries, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {"type": "number", "description": "Number of days back to look (default: 30)"},
				"limit": {"type": "number", "description": "Maximum number of entries to return (default: 10)"}
			}
		}`),
	}, s.handleListDiaryEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_diary",
		Description: "Search diary entries by text. Optionally filter by mood.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query text"},
				"mood": {"type": "string", "description": "Only return entries with this mood"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchDiary)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_diary_entry",
		Description: "Read the full content of a specific diary entry by file path.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "File path to the diary entry"}
			},
			"required": ["path"]
		}`),
	}, s.handleReadDiaryEntry)
}

func (s *Server) handleWriteDiaryEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Content string `json:"content"`
		Mood    string `json:"mood"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	content := strings.TrimSpace(args.Content)
	if content == "" {
		return toolError("content is required"), nil
	}
	mood := models.NormalizeMood(args.Mood)
	if !models.IsValidMood(mood) {
		return toolError("unknown mood %q. Valid moods: %s", args.Mood, strings.Join(models.ValidMoods, ", ")), nil
	}

	entry := models.NewDiaryEntry(s.author, mood, content)
	if err := s.diary.WriteEntry(entry); err != nil {
		return toolError("failed to write entry: %v", err), nil
	}
	ctx = logging.Ctx(ctx, slog.String("tool", "write_diary_entry"), slog.String("entry_id", entry.ID.String()))
	s.logger.InfoContext(ctx, "diary entry written", "path", entry.FilePath)

	text := fmt.Sprintf("Diary entry written:\nPath: %s", entry.FilePath)
	if s.remote != nil {
		if err := s.remote.CreateDiaryEntry(ctx, entry); err != nil {
			s.logger.WarnContext(ctx, "remote sync failed", "error", err)
			text += fmt.Sprintf("\nWarning: remote sync failed: %v", err)
		}
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}, nil
}

func (s *Server) handleListDiaryEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Days  int `json:"days"`
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Days <= 0 {
		args.Days = 30
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	entries, err := s.diary.ListEntries(storage.ListOptions{Limit: args.Limit, Days: args.Days})
	if err != nil {
		return toolError("failed to list entries: %v", err), nil
	}

	if len(entries) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No recent entries found."}},
		}, nil
	}

	var sb strings.Builder
	for _, entry := range entries {
		mood := entry.Mood
		if mood == "" {
			mood = "-"
		}
		sb.WriteString(fmt.Sprintf("- %s [%s] %s\n  %s\n",
			entry.CreatedAt.Format(timestampLayout),
			mood,
			entry.Preview(),
			entry.FilePath,
		))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleSearchDiary(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Mood  string `json:"mood"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	entries, err := s.diary.ListEntries(storage.ListOptions{})
	if err != nil {
		return toolError("failed to list entries: %v", err), nil
	}

	results := storage.SearchEntries(entries, args.Query, models.NormalizeMood(args.Mood), args.Limit)
	if len(results) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No matching entries found."}},
		}, nil
	}

	var sb strings.Builder
	for i, entry := range results {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		writeEntry(&sb, entry)
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleReadDiaryEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Path == "" {
		return toolError("path is required"), nil
	}

	entry, err := s.diary.ReadEntry(args.Path)
	if err != nil {
		return toolError("failed to read entry: %v", err), nil
	}

	var sb strings.Builder
	writeEntry(&sb, entry)
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func writeEntry(sb *strings.Builder, entry *models.DiaryEntry) {
	sb.WriteString(fmt.Sprintf("Entry: %s\n", entry.FilePath))
	sb.WriteString(fmt.Sprintf("Date: %s\n", entry.CreatedAt.Format(timestampLayout)))
	if entry.Author != "" {
		sb.WriteString(fmt.Sprintf("Author: %s\n", entry.Author))
	}
	if entry.Mood != "" {
		sb.WriteString(fmt.Sprintf("Mood: %s %s\n", models.MoodEmoji(entry.Mood), entry.Mood))
	}
	sb.WriteString("\n")
	sb.WriteString(entry.Content)
	sb.WriteString("\n")
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
