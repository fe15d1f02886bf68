// ABOUTME: CLI commands for the local profile.
// ABOUTME: Provides login and whoami to set and show the display nickname.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <nickname>",
	Short: "Set your display nickname",
	Long:  "Set the nickname shown in the timeline greeting and recorded on new entries.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show your display nickname",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := globalProfileStore.SetNickname(args[0]); err != nil {
		return fmt.Errorf("failed to set nickname: %w", err)
	}
	name, err := globalProfileStore.GetNickname()
	if err != nil {
		return fmt.Errorf("failed to read nickname: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
	if globalConfig != nil && globalConfig.Profile.Nickname != "" && globalConfig.Profile.Nickname != name {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Note: config profile.nickname (%s) takes precedence\n", globalConfig.Profile.Nickname)
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	name := displayName()
	if name == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run 'daybook login <nickname>' or 'daybook setup'.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
