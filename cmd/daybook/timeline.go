// ABOUTME: Cobra command that opens the live diary timeline TUI.
// ABOUTME: Wires the filesystem watch feed, optional remote polling, and the write path.
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/feed"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
	"github.com/2389-research/daybook/internal/tui"
)

// remoteFetchLimit bounds how many remote entries each poll asks for.
const remoteFetchLimit = 100

var timelineDays int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Open the diary timeline",
	Long:  "Show diary entries newest first with date dividers. Updates live as entries are written.",
	RunE:  runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().IntVar(&timelineDays, "days", 0, "Only show entries from the last N days (0 for all)")
}

func buildFeed() feed.Feed {
	local := feed.NewWatchFeed(globalDiaryStore, globalLogger,
		feed.WithListOptions(storage.ListOptions{Days: timelineDays}),
	)
	if globalRemoteClient == nil {
		return local
	}

	remote := globalRemoteClient
	poll := feed.NewPollFeed(func(ctx context.Context) ([]*models.DiaryEntry, error) {
		return remote.ReadDiaryEntries(ctx, remoteFetchLimit)
	}, globalConfig.GetPollInterval(), globalLogger)
	return feed.NewMergeFeed(local, poll)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	app := tui.NewAppModel(tui.TimelineOptions{
		DisplayName: displayName(),
		Location:    globalLocation,
		Feed:        buildFeed(),
		Write: func(ctx context.Context, mood, content string) error {
			_, err := writeDiaryEntry(ctx, mood, content)
			return err
		},
		Logger: globalLogger,
	})
	defer func() {
		if err := app.Close(); err != nil {
			globalLogger.Warn("failed to stop diary feed", "error", err)
		}
	}()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
