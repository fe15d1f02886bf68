// ABOUTME: Tests for structured logging setup.
// ABOUTME: Covers context attributes, level parsing, and log file creation.
package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContextAttributesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	ctx := Ctx(context.Background(), slog.String("screen", "timeline"))
	ctx = Ctx(ctx, slog.Int("entries", 3))
	logger.InfoContext(ctx, "rendered")

	out := buf.String()
	if !strings.Contains(out, "screen=timeline") {
		t.Errorf("expected screen attribute, got %q", out)
	}
	if !strings.Contains(out, "entries=3") {
		t.Errorf("expected entries attribute, got %q", out)
	}
}

func TestWithAttrsKeepsContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo).With("component", "feed")

	ctx := Ctx(context.Background(), slog.String("source", "watch"))
	logger.InfoContext(ctx, "push")

	out := buf.String()
	if !strings.Contains(out, "component=feed") || !strings.Contains(out, "source=watch") {
		t.Errorf("expected both attributes, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info record to be filtered")
	}
	if !strings.Contains(out, "shown") {
		t.Error("expected warn record to be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "daybook.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer func() { _ = f.Close() }()

	logger := New(f, slog.LevelInfo)
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log line in file, got %q", data)
	}
}
