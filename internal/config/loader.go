package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arpi-platform/regwatch/internal/alert"
	"github.com/arpi-platform/regwatch/internal/ingest"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".regwatch"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file layout. Every section is optional;
// absent sections leave the flag-derived Config untouched, and unrecognized
// keys are ignored.
type File struct {
	// Sources replaces the default source batch list.
	Sources []ingest.Source `yaml:"sources"`

	// Alerting overrides the alert engine options.
	Alerting *alert.Config `yaml:"alerting"`

	// OutputDir overrides the artifact output directory.
	OutputDir string `yaml:"output_dir"`

	// DBDir overrides the run store directory.
	DBDir string `yaml:"db_dir"`
}

// LoadConfigFile reads and parses a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound so callers can
// decide whether a missing file is fatal (explicit path) or fine (search).
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse configuration file: %w", err)
	}
	return &cf, nil
}

// Apply overlays the file's settings onto the configuration. Only fields
// present in the file change anything; a partial alerting section keeps
// the defaults for the keys it omits.
func (f *File) Apply(c *Config) {
	if len(f.Sources) > 0 {
		c.Sources = f.Sources
	}
	if f.Alerting != nil {
		if f.Alerting.Threshold != 0 {
			c.Alerting.Threshold = f.Alerting.Threshold
		}
		if f.Alerting.Domains != nil {
			c.Alerting.Domains = f.Alerting.Domains
		}
		if f.Alerting.Departments != nil {
			c.Alerting.Departments = f.Alerting.Departments
		}
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
}

// FindConfigFile resolves the configuration file location:
// an explicit path wins; otherwise .regwatch is searched in the current
// directory and then in the user's home directory. Returns an empty string
// when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
