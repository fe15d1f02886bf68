// ABOUTME: MCP server initialization and configuration for daybook.
// ABOUTME: Sets up server with diary tools for AI agent access.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/storage"
)

// Server wraps the MCP server with diary storage.
type Server struct {
	mcp    *gomcp.Server
	diary  storage.DiaryStore
	remote *storage.RemoteClient
	author string
	logger *slog.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithRemoteClient sets the remote API client used to sync new entries.
func WithRemoteClient(rc *storage.RemoteClient) ServerOption {
	return func(s *Server) {
		s.remote = rc
	}
}

// WithAuthor sets the author recorded on entries written through the server.
func WithAuthor(name string) ServerOption {
	return func(s *Server) {
		s.author = name
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server with diary capabilities.
func NewServer(diary storage.DiaryStore, opts ...ServerOption) (*Server, error) {
	if diary == nil {
		return nil, fmt.Errorf("diary store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "daybook",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		diary:  diary,
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerDiaryTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.InfoContext(ctx, "mcp server starting", "root", s.diary.Root(), "remote", s.remote != nil)
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
