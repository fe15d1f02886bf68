// ABOUTME: Tests for MCP server creation and validation.
// ABOUTME: Verifies server requires a diary store and applies options.
package mcp

import (
	"testing"

	"github.com/2389-research/daybook/internal/storage"
)

func TestNewServerRequiresDiaryStore(t *testing.T) {
	_, err := NewServer(nil)
	if err == nil {
		t.Error("expected error when diary store is nil")
	}
}

func TestNewServerSuccess(t *testing.T) {
	diary, _ := storage.NewDiaryMDStore(t.TempDir())

	server, err := NewServer(diary)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server == nil {
		t.Error("expected non-nil server")
	}
}

func TestNewServerWithOptions(t *testing.T) {
	diary, _ := storage.NewDiaryMDStore(t.TempDir())
	remote := storage.NewRemoteClient("http://example.com", "key", "team")

	server, err := NewServer(diary, WithRemoteClient(remote), WithAuthor("moon"))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server.remote == nil {
		t.Error("expected remote client to be set")
	}
	if server.author != "moon" {
		t.Errorf("expected author moon, got %q", server.author)
	}
}
