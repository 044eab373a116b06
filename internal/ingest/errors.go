package ingest

import "errors"

// Loader errors.
var (
	// ErrNoSources is returned when no source batch loaded successfully.
	// This is pipeline-fatal: with zero sources there is nothing to unify.
	ErrNoSources = errors.New("no source batches loaded")

	// ErrMissingTitleColumn is returned for a batch whose header has no
	// title column. Title is the only required column; all others are
	// optional.
	ErrMissingTitleColumn = errors.New("source batch is missing the title column")
)
