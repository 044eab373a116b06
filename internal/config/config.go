package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arpi-platform/regwatch/internal/alert"
	"github.com/arpi-platform/regwatch/internal/analyze"
	"github.com/arpi-platform/regwatch/internal/ingest"
	"github.com/arpi-platform/regwatch/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "regwatch"

	// DefaultOutputDir is where run artifacts (the annotated CSV, run
	// metadata, the markdown summary) are written.
	DefaultOutputDir = "output"

	// DefaultConcurrency is the number of source batches loaded in
	// parallel during a run.
	DefaultConcurrency = ingest.DefaultConcurrency
)

// DefaultSources returns the conventional per-regulator batch files under
// dataDir. The scrapers that produce these files run outside regwatch.
func DefaultSources(dataDir string) []ingest.Source {
	return []ingest.Source{
		{Name: model.SourceCAC, Path: filepath.Join(dataDir, "cac_all_policies.csv")},
		{Name: model.SourceMIIT, Path: filepath.Join(dataDir, "miit_all_policies.csv")},
		{Name: model.SourceTC260, Path: filepath.Join(dataDir, "tc260_all_policies.csv")},
	}
}

// Config holds all configuration options for regwatch.
//
// A single flat struct keeps flag wiring simple; the alerting options are the
// one nested group because they are also a standalone YAML section shared
// with the alert engine.
type Config struct {
	// Sources lists the input batch files, in the order their records are
	// merged.
	Sources []ingest.Source

	// Alerting configures the high-risk alert engine.
	Alerting alert.Config

	// OutputDir is the directory run artifacts are written to. It is
	// created if it does not exist.
	OutputDir string

	// DBDir is the directory holding the SQLite run store. Defaults to
	// the XDG data directory. Runs are persisted only when SaveToDB is
	// set.
	DBDir string

	// SaveToDB persists each run so alert, trends, and history can
	// operate on it later without re-reading the source batches.
	SaveToDB bool

	// Concurrency is the number of source batches loaded in parallel.
	Concurrency int

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is an explicit configuration file path. If empty,
	// the tool searches for .regwatch in the current directory and then
	// in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Callers override
// individual fields from CLI flags and the optional configuration file.
func NewConfig() *Config {
	return &Config{
		Sources:     DefaultSources("data"),
		Alerting:    alert.DefaultConfig(),
		OutputDir:   DefaultOutputDir,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
		Concurrency: DefaultConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for regwatch.
// On Linux: ~/.local/share/regwatch
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for regwatch.
// On Linux: ~/.config/regwatch
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after flag parsing and file overlay, before any work begins.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSourcesConfigured
	}
	for _, src := range c.Sources {
		if src.Path == "" {
			return ErrSourceWithoutPath
		}
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Alerting.Threshold < analyze.MinScore || c.Alerting.Threshold > analyze.MaxScore {
		return ErrInvalidAlertThreshold
	}
	return nil
}
