package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arpi-platform/regwatch/internal/aggregate"
	"github.com/arpi-platform/regwatch/internal/config"
)

// NewTrendsCmd creates the trends command.
func NewTrendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show regulatory trends from the latest run",
		Long: `Trends summarizes the latest saved run along two axes: regulatory
intensity over time, and the distribution of policies across issuing
departments.

Examples:
  # Monthly trend (default)
  regwatch trends

  # Quarterly buckets
  regwatch trends --granularity quarter`,
		Args: cobra.NoArgs,
		RunE: runTrendsCmd,
	}

	cmd.Flags().StringP("granularity", "g", string(aggregate.GranularityMonth),
		"Time bucket size: month, quarter, or year")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory for the run store")

	return cmd
}

// runTrendsCmd executes the trends command.
func runTrendsCmd(cmd *cobra.Command, _ []string) error {
	granFlag, err := cmd.Flags().GetString("granularity")
	if err != nil {
		return err
	}
	granularity, err := aggregate.ParseGranularity(granFlag)
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

	run, err := store.LatestRun(cmd.Context())
	if err != nil {
		return fmt.Errorf("read latest run: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run of %s, %d policies\n\n",
		run.GeneratedAt.Format("2006-01-02 15:04"), len(run.Records))

	trend := aggregate.TemporalTrend(run.Records, granularity)
	fmt.Fprintf(out, "Regulatory intensity by %s:\n", granFlag)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tPOLICIES\tMEAN\tMIN\tMAX")
	for _, p := range trend {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\n", p.Period, p.Count, p.Mean, p.Min, p.Max)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats := aggregate.DepartmentDistribution(run.Records)
	fmt.Fprintln(out, "\nDepartment distribution:")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPARTMENT\tPOLICIES\tMEAN\tHIGH INTENSITY\tTOP DOMAINS")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%s\n",
			s.Department, s.Count, s.MeanScore, s.HighIntensity, joinDomains(s.TopDomains))
	}
	return tw.Flush()
}

func joinDomains(domains []aggregate.DomainCount) string {
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Domain)
	}
	return strings.Join(names, ", ")
}
