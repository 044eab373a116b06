package pipeline

import "errors"

// Pipeline-fatal conditions. These terminate the run with an explicit
// "no data" result, distinct from a successful run over few records.
var (
	// ErrNoRecords is returned when canonicalization leaves nothing to
	// process: every loaded record was dropped for a missing title or an
	// unparseable date.
	ErrNoRecords = errors.New("no valid records after canonicalization")

	// ErrNoRelevantRecords is returned when the relevance filter rejects
	// the entire record set. The run halts; there is no partial success.
	ErrNoRelevantRecords = errors.New("no relevant records after filtering")
)
