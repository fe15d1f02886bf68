// ABOUTME: MCP server command implementation for daybook.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/daybook/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, allowing AI agents to write,
list, search, and read diary entries.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := []mcppkg.ServerOption{
		mcppkg.WithAuthor(displayName()),
		mcppkg.WithLogger(globalLogger),
	}
	if globalRemoteClient != nil {
		opts = append(opts, mcppkg.WithRemoteClient(globalRemoteClient))
	}

	server, err := mcppkg.NewServer(globalDiaryStore, opts...)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
