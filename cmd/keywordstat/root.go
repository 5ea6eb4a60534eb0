// Package main provides the entry point for the keywordstat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for keywordstat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywordstat",
		Short: "Telegram bot for Yandex Wordstat keyword reports",
		Long: `Keywordstat collects keyword phrases, looks up their monthly search
volume in Yandex Wordstat, and produces an Excel spreadsheet.

The "run" command starts the Telegram bot; the "fetch" command performs a
one-shot lookup from the terminal without Telegram. When no Yandex OAuth
token is configured, both commands generate deterministic offline data so
the full flow can be exercised without API access.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
