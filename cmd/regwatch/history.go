package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arpi-platform/regwatch/internal/config"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved pipeline runs",
		Long: `History lists the runs saved in the local store, newest first, with
their record counts and per-stage attrition.

Examples:
  # The ten most recent runs
  regwatch history

  # Everything the store holds
  regwatch history --limit 0`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 10,
		"Maximum number of runs to list (0 for all)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory for the run store")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	store, err := openReadOnlyStore(dbDir)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only store

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs saved yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGENERATED\tPOLICIES\tSOURCES\tDUPLICATES\tFILTERED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d/%d\t%d\t%d\n",
			r.ID,
			r.GeneratedAt.Format("2006-01-02 15:04:05"),
			r.RecordCount,
			r.SourcesLoaded, r.SourcesLoaded+r.SourcesFailed,
			r.DuplicatesRemoved,
			r.FilteredOut,
		)
	}
	return tw.Flush()
}
