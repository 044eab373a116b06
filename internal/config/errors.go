package config

import "errors"

// Configuration validation errors. Package-level sentinel errors so callers
// can match with errors.Is while still getting a readable message.
var (
	// ErrNoSourcesConfigured is returned when the source list is empty.
	ErrNoSourcesConfigured = errors.New("no sources configured: provide at least one source batch")

	// ErrSourceWithoutPath is returned when a configured source has no
	// file path.
	ErrSourceWithoutPath = errors.New("source configured without a path")

	// ErrNoOutputDir is returned when the artifact output directory is
	// empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidConcurrency is returned when the load concurrency is not
	// positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidAlertThreshold is returned when the alert threshold falls
	// outside the regulatory score range.
	ErrInvalidAlertThreshold = errors.New("invalid alert threshold: must be between 1 and 10")
)
