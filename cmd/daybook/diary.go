// ABOUTME: CLI commands for diary operations.
// ABOUTME: Provides write, list, search, read, and stats commands outside the TUI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
	"github.com/2389-research/daybook/internal/timeline"
)

const timestampLayout = "2006-01-02 15:04:05"

var writeCmd = &cobra.Command{
	Use:   "write <content>",
	Short: "Write a diary entry",
	Long:  "Create a diary entry. Content is markdown. Synced to the team diary when configured.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWrite,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent diary entries",
	Long:  "List diary entries newest first, including remote entries when configured.",
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search diary entries",
	Long:  "Search diary entries by substring matching.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Read a diary entry",
	Long:  "Read a specific diary entry by file path.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show diary statistics",
	Long:  "Show entry counts, streaks, and mood totals.",
	RunE:  runStats,
}

// Flags
var (
	writeMood   string
	listLimit   int
	listDays    int
	searchLimit int
	searchMood  string
)

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(statsCmd)

	writeCmd.Flags().StringVarP(&writeMood, "mood", "m", "", "Mood: "+strings.Join(models.ValidMoods, ", "))

	listCmd.Flags().IntVar(&listLimit, "limit", 10, "Maximum number of entries to show")
	listCmd.Flags().IntVar(&listDays, "days", 30, "Number of days back to look")

	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchMood, "mood", "", "Only match entries with this mood")
}

// writeDiaryEntry stores an entry locally and syncs it remotely when configured.
// Remote failures are logged, never returned.
func writeDiaryEntry(ctx context.Context, mood, content string) (*models.DiaryEntry, error) {
	mood = models.NormalizeMood(mood)
	if !models.IsValidMood(mood) {
		return nil, fmt.Errorf("unknown mood %q (valid: %s)", mood, strings.Join(models.ValidMoods, ", "))
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("entry content must not be empty")
	}

	entry := models.NewDiaryEntry(displayName(), mood, content)
	if err := globalDiaryStore.WriteEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to write entry: %w", err)
	}
	ctx = logging.Ctx(ctx, slog.String("entry_id", entry.ID.String()))
	globalLogger.InfoContext(ctx, "diary entry written", "path", entry.FilePath)

	if globalRemoteClient != nil {
		if err := globalRemoteClient.CreateDiaryEntry(ctx, entry); err != nil {
			globalLogger.WarnContext(ctx, "remote sync failed", "error", err)
		}
	}
	return entry, nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	entry, err := writeDiaryEntry(cmd.Context(), writeMood, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Diary entry written: %s\n", entry.FilePath)
	return nil
}

// collectEntries lists local entries and merges remote ones when configured.
func collectEntries(cmd *cobra.Command, opts storage.ListOptions) ([]*models.DiaryEntry, error) {
	entries, err := globalDiaryStore.ListEntries(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if globalRemoteClient == nil {
		return entries, nil
	}

	remoteEntries, err := globalRemoteClient.ReadDiaryEntries(cmd.Context(), opts.Limit)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to fetch remote entries: %v\n", err)
		return entries, nil
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Key()] = true
	}
	for _, e := range remoteEntries {
		if !seen[e.Key()] {
			entries = append(entries, e)
		}
	}
	storage.SortNewestFirst(entries)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := collectEntries(cmd, storage.ListOptions{Limit: listLimit, Days: listDays})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries found.")
		return nil
	}
	printEntries(out, entries)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	entries, err := collectEntries(cmd, storage.ListOptions{})
	if err != nil {
		return err
	}

	results := storage.SearchEntries(entries, args[0], models.NormalizeMood(searchMood), searchLimit)
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No matching entries found.")
		return nil
	}
	for _, entry := range results {
		fmt.Fprintf(out, "--- %s %s\n", entry.CreatedAt.In(globalLocation).Format(timestampLayout), entryLocation(entry))
		fmt.Fprintf(out, "  %s\n\n", runewidth.Truncate(strings.ReplaceAll(entry.Content, "\n", " "), 100, "..."))
	}
	return nil
}

func runRead(cmd *cobra.Command, args []string) error {
	entry, err := globalDiaryStore.ReadEntry(args[0])
	if err != nil {
		return fmt.Errorf("failed to read entry: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Date: %s\n", entry.CreatedAt.In(globalLocation).Format(timestampLayout))
	if entry.Author != "" {
		fmt.Fprintf(out, "Author: %s\n", entry.Author)
	}
	if entry.Mood != "" {
		fmt.Fprintf(out, "Mood: %s %s\n", models.MoodEmoji(entry.Mood), entry.Mood)
	}
	fmt.Fprintf(out, "\n%s\n", entry.Content)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	entries, err := collectEntries(cmd, storage.ListOptions{})
	if err != nil {
		return err
	}

	s := timeline.Summarize(entries, globalLocation, time.Now())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Entries:        %d\n", s.Total)
	fmt.Fprintf(out, "Days written:   %d\n", s.DaysWritten)
	fmt.Fprintf(out, "Current streak: %d\n", s.CurrentStreak)
	fmt.Fprintf(out, "Longest streak: %d\n", s.LongestStreak)
	if len(s.Moods) > 0 {
		fmt.Fprintln(out, "\nMoods:")
		for _, mc := range s.Moods {
			label := mc.Mood
			if label == "" {
				label = "(none)"
			}
			fmt.Fprintf(out, "  %s %d\n", runewidth.FillRight(label, 10), mc.Count)
		}
	}
	return nil
}

func printEntries(out io.Writer, entries []*models.DiaryEntry) {
	for _, entry := range entries {
		mood := entry.Mood
		if mood == "" {
			mood = "-"
		}
		fmt.Fprintf(out, "%s [%s] %s  %s\n",
			entry.CreatedAt.In(globalLocation).Format(timestampLayout),
			mood,
			runewidth.Truncate(entry.Preview(), 48, "..."),
			entryLocation(entry),
		)
	}
}

func entryLocation(entry *models.DiaryEntry) string {
	if entry.Source == models.SourceRemote {
		return "(remote)"
	}
	return entry.FilePath
}
