package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arpi-platform/regwatch/internal/alert"
	"github.com/arpi-platform/regwatch/internal/analyze"
	"github.com/arpi-platform/regwatch/internal/config"
	"github.com/arpi-platform/regwatch/internal/log"
)

// NewAlertCmd creates the alert command.
func NewAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Generate high-risk policy alerts from the latest run",
		Long: `Alert evaluates the latest saved run against the alert rules and prints
a text report of high-risk policies.

A policy becomes an alert when its regulatory score is at or above the
threshold and it passes the optional department and domain allow-lists.
Alerts are ordered by score, highest first.

Examples:
  # Alert with the default threshold (8.0)
  regwatch alert

  # Raise the threshold and restrict to one domain
  regwatch alert --threshold 9 --domains 数据安全

  # Write the report to a file
  regwatch alert -o alerts.txt

  # Emit the ranked alert records as JSON
  regwatch alert --json`,
		Args: cobra.NoArgs,
		RunE: runAlertCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .regwatch in current or home directory)")
	cmd.Flags().Float64P("threshold", "t", alert.DefaultThreshold,
		"Minimum regulatory score for an alert")
	cmd.Flags().StringSlice("domains", nil,
		"Restrict alerts to these topic domains")
	cmd.Flags().StringSlice("departments", nil,
		"Restrict alerts to these unified departments")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory for the run store")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file instead of stdout")
	cmd.Flags().BoolP("json", "j", false,
		"Output the ranked alert records as JSON instead of the text report")

	return cmd
}

// runAlertCmd executes the alert command.
func runAlertCmd(cmd *cobra.Command, _ []string) error {
	alertCfg, dbDir, err := buildAlertConfig(cmd)
	if err != nil {
		return err
	}
	if alertCfg.Threshold < analyze.MinScore || alertCfg.Threshold > analyze.MaxScore {
		return config.ErrInvalidAlertThreshold
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	store, err := openReadOnlyStore(dbDir)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only store

	run, err := store.LatestRun(cmd.Context())
	if err != nil {
		return fmt.Errorf("read latest run: %w", err)
	}

	engine := alert.NewEngine(alertCfg, alert.WithEngineLogger(logger))
	alerts := engine.Evaluate(run.Records)

	logger.Info("alerts evaluated",
		"records", len(run.Records),
		"alerts", len(alerts),
		"threshold", alertCfg.Threshold,
	)

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	var body string
	if asJSON {
		data, err := json.MarshalIndent(alerts, "", "  ")
		if err != nil {
			return fmt.Errorf("serialize alerts: %w", err)
		}
		body = string(data)
	} else {
		body = alert.TextReport(alerts, time.Now())
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), body)
		return nil
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(body+"\n"), 0600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Alert report written to %s (%d alerts)\n", outputPath, len(alerts))
	return nil
}

// buildAlertConfig resolves the alert options: defaults, then the
// configuration file, then explicitly set flags.
func buildAlertConfig(cmd *cobra.Command) (alert.Config, string, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return alert.Config{}, "", err
	}
	cfg.ConfigFilePath = configPath

	if err := overlayConfigFile(cfg); err != nil {
		return alert.Config{}, "", err
	}

	if cmd.Flags().Changed("threshold") {
		if cfg.Alerting.Threshold, err = cmd.Flags().GetFloat64("threshold"); err != nil {
			return alert.Config{}, "", err
		}
	}
	if cmd.Flags().Changed("domains") {
		if cfg.Alerting.Domains, err = cmd.Flags().GetStringSlice("domains"); err != nil {
			return alert.Config{}, "", err
		}
	}
	if cmd.Flags().Changed("departments") {
		if cfg.Alerting.Departments, err = cmd.Flags().GetStringSlice("departments"); err != nil {
			return alert.Config{}, "", err
		}
	}
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return alert.Config{}, "", err
		}
	}

	return cfg.Alerting, cfg.DBDir, nil
}
