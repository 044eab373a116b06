// Package main provides the entry point for the regwatch CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arpi-platform/regwatch/internal/database"
)

// NewRootCmd creates the root command for regwatch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regwatch",
		Short: "Regulatory intelligence pipeline for Chinese AI policy",
		Long: `Regwatch ingests scraped policy documents from Chinese regulators (CAC,
MIIT, TC260), unifies them into a single deduplicated record set, filters
for AI relevance, and annotates each policy with a regulatory intensity
assessment.

Run results are written as CSV/JSON/Markdown artifacts and saved to a local
store, which the alert, trends, and history subcommands read.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewAlertCmd())
	cmd.AddCommand(NewTrendsCmd())
	cmd.AddCommand(NewHistoryCmd())
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

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// openReadOnlyStore opens the run store without creating it. The read-only
// subcommands all need a saved run to work on.
func openReadOnlyStore(dbDir string) (*database.RunStore, error) {
	store, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, database.ErrStoreNotFound) {
		return nil, fmt.Errorf("no saved runs in %s: execute 'regwatch run' first", dbDir)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
