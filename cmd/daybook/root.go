// ABOUTME: Root Cobra command and global flags for the daybook CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, logging, and store initialization.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/config"
	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/storage"
)

var globalConfig *config.Config
var globalDiaryStore storage.DiaryStore
var globalProfileStore *storage.ProfileStore
var globalRemoteClient *storage.RemoteClient
var globalLocation *time.Location
var globalLogger = logging.Discard()
var globalLogFile *os.File

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "A mood diary for your terminal",
	Long: `
██████╗  █████╗ ██╗   ██╗██████╗  ██████╗  ██████╗ ██╗  ██╗
██╔══██╗██╔══██╗╚██╗ ██╔╝██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝
██║  ██║███████║ ╚████╔╝ ██████╔╝██║   ██║██║   ██║█████╔╝
██║  ██║██╔══██║  ╚██╔╝  ██╔══██╗██║   ██║██║   ██║██╔═██╗
██████╔╝██║  ██║   ██║   ██████╔╝╚██████╔╝╚██████╔╝██║  ██╗
╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝

A personal mood diary with a live timeline.
Local-first with optional team sync.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		teardownGlobals()
		return nil
	},
	RunE: runTimeline,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(cmd.Context()); err != nil {
		return err
	}
	globalConfig = cfg

	if err := openLog(cfg); err != nil {
		return err
	}

	loc, err := cfg.GetLocation()
	if err != nil {
		return err
	}
	globalLocation = loc

	diaryPath, err := cfg.GetDiaryPath()
	if err != nil {
		return fmt.Errorf("failed to resolve diary path: %w", err)
	}
	diaryStore, err := storage.NewDiaryMDStore(diaryPath)
	if err != nil {
		return fmt.Errorf("failed to open diary store: %w", err)
	}
	globalDiaryStore = diaryStore

	dataDir, err := config.DataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data dir: %w", err)
	}
	globalProfileStore = storage.NewProfileStore(dataDir)

	if cfg.HasRemote() {
		globalRemoteClient = storage.NewRemoteClient(cfg.Remote.APIURL, cfg.Remote.APIKey, cfg.Remote.TeamID)
	}

	globalLogger.Debug("daybook starting", "command", cmd.Name(), "diary", diaryPath, "remote", cfg.HasRemote())
	return nil
}

func openLog(cfg *config.Config) error {
	path, err := cfg.GetLogFile()
	if err != nil {
		return fmt.Errorf("failed to resolve log file: %w", err)
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return err
	}
	globalLogFile = f

	level := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	globalLogger = logging.New(f, level)
	slog.SetDefault(globalLogger)
	return nil
}

func teardownGlobals() {
	if globalDiaryStore != nil {
		_ = globalDiaryStore.Close()
		globalDiaryStore = nil
	}
	if globalLogFile != nil {
		_ = globalLogFile.Close()
		globalLogFile = nil
	}
}

// displayName returns the configured nickname, falling back to the profile store.
func displayName() string {
	if globalConfig != nil {
		if name := strings.TrimSpace(globalConfig.Profile.Nickname); name != "" {
			return name
		}
	}
	if globalProfileStore == nil {
		return ""
	}
	name, err := globalProfileStore.GetNickname()
	if err != nil {
		globalLogger.Warn("failed to read profile", "error", err)
		return ""
	}
	return name
}
