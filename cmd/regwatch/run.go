package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arpi-platform/regwatch/internal/analyze"
	"github.com/arpi-platform/regwatch/internal/config"
	"github.com/arpi-platform/regwatch/internal/database"
	"github.com/arpi-platform/regwatch/internal/ingest"
	"github.com/arpi-platform/regwatch/internal/log"
	"github.com/arpi-platform/regwatch/internal/model"
	"github.com/arpi-platform/regwatch/internal/pipeline"
	"github.com/arpi-platform/regwatch/internal/report"
)

// Artifact file names written into the output directory.
const (
	csvArtifact      = "all_policies_analyzed.csv"
	jsonArtifact     = "analysis_result.json"
	metadataArtifact = "metadata.json"
	summaryArtifact  = "summary.md"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load policy batches and run the analysis pipeline",
		Long: `Run loads the configured source batches, unifies them into a single
canonical record set, and analyzes the result.

The pipeline stages are:
- canonicalize: validate titles and publication dates
- deduplicate: collapse re-publications of the same policy
- relevance_filter: keep AI-related policies only
- unify_departments: map department names to the controlled vocabulary
- annotate: score regulatory intensity, domains, and enforcement level

Artifacts (CSV table, JSON result, metadata, Markdown summary) are written
to the output directory and the run is saved to the local store.

Examples:
  # Run with the default sources (data/*.csv)
  regwatch run

  # Use a custom configuration file
  regwatch run -c myconfig.yaml

  # Write artifacts elsewhere and skip the run store
  regwatch run -o /tmp/artifacts --no-db`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .regwatch in current or home directory)")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory for run artifacts")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory for the run store")
	cmd.Flags().Bool("no-db", false,
		"Do not save the run to the store")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of source batches loaded in parallel")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Cancel the run on interrupt so partial artifacts are not written.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return executeRun(ctx, cfg, logger, cmd)
}

// buildRunConfig creates a Config from the configuration file and flags.
// Flag values that were explicitly set override the file.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	if err := overlayConfigFile(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output") {
		if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	if noDB {
		cfg.SaveToDB = false
	}

	return cfg, nil
}

// overlayConfigFile applies the configuration file, if one exists.
// An explicitly specified file must exist; a searched-for file is optional.
func overlayConfigFile(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)

	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	cf.Apply(cfg)
	return nil
}

// executeRun loads the sources, runs the pipeline, and emits artifacts.
func executeRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	logger.Info("starting run",
		"sources", len(cfg.Sources),
		"outputDir", cfg.OutputDir,
		"saveToDB", cfg.SaveToDB,
	)

	startTime := time.Now()

	loader := ingest.NewLoader(
		ingest.WithConcurrency(cfg.Concurrency),
		ingest.WithLoaderLogger(logger),
	)
	loaded, err := loader.Load(ctx, cfg.Sources)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	result := model.NewRunResult(loaded.Records)
	result.SourcesLoaded = loaded.Loaded
	result.SourcesFailed = loaded.Failed

	p := pipeline.Default(analyze.NewAnalyzer(), logger)
	if err := p.Execute(ctx, result); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if err := writeArtifacts(cfg.OutputDir, result); err != nil {
		return err
	}

	fmt.Fprintf(out, "Loaded %d source batches (%d failed)\n", result.SourcesLoaded, result.SourcesFailed)
	fmt.Fprintf(out, "Analyzed %d policies (dropped %d, duplicates %d, filtered %d)\n",
		len(result.Records),
		result.DroppedNoTitle+result.DroppedBadDate,
		result.DuplicatesRemoved,
		result.FilteredOut,
	)
	fmt.Fprintf(out, "Artifacts written to %s\n", cfg.OutputDir)

	if cfg.SaveToDB {
		id, err := saveRun(ctx, cfg.DBDir, result, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Run saved to store (id %d)\n", id)
	}

	fmt.Fprintf(out, "Completed in %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// writeArtifacts writes the CSV table, JSON result, metadata document, and
// Markdown summary into the output directory.
func writeArtifacts(outputDir string, result *model.RunResult) error {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	write := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(outputDir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path is under the configured output dir
		if err != nil {
			return fmt.Errorf("create artifact %s: %w", name, err)
		}
		if err := fn(f); err != nil {
			_ = f.Close() //nolint:errcheck // write error takes precedence
			return fmt.Errorf("write artifact %s: %w", name, err)
		}
		return f.Close()
	}

	if err := write(csvArtifact, func(f *os.File) error {
		_, err := report.NewCSVWriter(f).Write(result)
		return err
	}); err != nil {
		return err
	}
	if err := write(jsonArtifact, func(f *os.File) error {
		_, err := report.NewJSONWriter(f, report.WithPrettyPrint()).Write(result)
		return err
	}); err != nil {
		return err
	}
	if err := write(metadataArtifact, func(f *os.File) error {
		_, err := report.NewJSONWriter(f, report.WithPrettyPrint()).WriteMetadata(result)
		return err
	}); err != nil {
		return err
	}
	return write(summaryArtifact, func(f *os.File) error {
		_, err := report.NewMarkdownWriter(f).Write(result)
		return err
	})
}

// saveRun persists the run and returns its store ID.
func saveRun(ctx context.Context, dbDir string, result *model.RunResult, logger *slog.Logger) (int64, error) {
	store, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return 0, fmt.Errorf("open run store: %w", err)
	}
	defer store.Close() //nolint:errcheck // read-mostly store

	id, err := store.SaveRun(ctx, result)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	logger.Info("run saved", "id", id, "records", len(result.Records))
	return id, nil
}
