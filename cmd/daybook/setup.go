// ABOUTME: Cobra command for interactive first-run setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect the nickname and optional remote credentials.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/config"
	"github.com/2389-research/daybook/internal/storage"
	"github.com/2389-research/daybook/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set your nickname and connect a team diary",
	Long:  "Interactive wizard to configure your display nickname and optional remote diary credentials.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data dir: %w", err)
	}
	profile := storage.NewProfileStore(dataDir)

	nickname := cfg.Profile.Nickname
	if nickname == "" {
		nickname, _ = profile.GetNickname()
	}

	model := tui.NewSetupModel(tui.SetupResult{
		Nickname: nickname,
		APIURL:   cfg.Remote.APIURL,
		TeamID:   cfg.Remote.TeamID,
		APIKey:   cfg.Remote.APIKey,
	})

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	r := final.Result()
	cfg.Profile.Nickname = r.Nickname
	cfg.Remote.APIURL = r.APIURL
	cfg.Remote.TeamID = r.TeamID
	cfg.Remote.APIKey = r.APIKey

	if err := profile.SetNickname(r.Nickname); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	if r.LocalOnly() {
		fmt.Println("Remote sync is off. Run 'daybook setup' again to connect a team diary.")
	}
	return nil
}
