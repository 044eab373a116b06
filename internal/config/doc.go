// Package config holds the runtime configuration for regwatch: source batch
// locations, artifact output paths, alerting options, and persistence
// settings. A Config is populated from CLI flags, optionally overlaid with a
// YAML configuration file, validated once up front, and passed through the
// application by dependency injection rather than global state.
package config
