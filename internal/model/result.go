package model

import "time"

// RunResult is the shared state threaded through pipeline stages and out to
// report writers and the run store. Each stage reads the output of the
// previous stage and appends its own.
type RunResult struct {
	// GeneratedAt is the timestamp of the pipeline run.
	GeneratedAt time.Time `json:"generated_at"`

	// Raw holds the loaded source batches before canonicalization.
	Raw []RawRecord `json:"-"`

	// Canonical holds validated records, before deduplication.
	Canonical []CanonicalRecord `json:"-"`

	// Unified holds the post-dedup record set. The relevance filter and
	// department canonicalizer rewrite this slice in place.
	Unified []UnifiedRecord `json:"-"`

	// Records is the final annotated set, sorted by publication date,
	// newest first.
	Records []AnnotatedRecord `json:"records"`

	// MaxPublicationDate is the maximum date seen across the unfiltered
	// canonical set. Downstream consumers use it to fix a stable time-axis
	// upper bound independent of later filtering.
	MaxPublicationDate time.Time `json:"max_publication_date"`

	// === Attrition accounting ===
	// Per-record drops are expected, non-fatal attrition. They are counted
	// here and logged, never raised to the caller.

	// SourcesLoaded is the number of source batches that loaded successfully.
	SourcesLoaded int `json:"sources_loaded"`

	// SourcesFailed is the number of source batches that failed to load.
	SourcesFailed int `json:"sources_failed"`

	// DroppedNoTitle counts records dropped for a missing title.
	DroppedNoTitle int `json:"dropped_no_title"`

	// DroppedBadDate counts records dropped for an unparseable date.
	DroppedBadDate int `json:"dropped_bad_date"`

	// DuplicatesRemoved counts records merged away by deduplication.
	DuplicatesRemoved int `json:"duplicates_removed"`

	// FilteredOut counts records rejected by the relevance filter.
	FilteredOut int `json:"filtered_out"`

	// PerformedStages lists the pipeline stages that ran, in order.
	PerformedStages []string `json:"performed_stages"`
}

// NewRunResult creates a RunResult for a pipeline run over the given raw
// record set.
func NewRunResult(raw []RawRecord) *RunResult {
	return &RunResult{
		GeneratedAt: time.Now(),
		Raw:         raw,
	}
}
