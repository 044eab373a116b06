package pipeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/arpi-platform/regwatch/internal/analyze"
	"github.com/arpi-platform/regwatch/internal/model"
	"github.com/arpi-platform/regwatch/internal/unify"
)

// CanonicalizeStep validates raw records into canonical ones and records
// the maximum publication date over the unfiltered canonical set, before
// any later stage narrows it.
type CanonicalizeStep struct {
	canonicalizer *unify.Canonicalizer
	logger        *slog.Logger
}

// NewCanonicalizeStep creates the canonicalization stage.
func NewCanonicalizeStep(logger *slog.Logger) *CanonicalizeStep {
	return &CanonicalizeStep{
		canonicalizer: unify.NewCanonicalizer(unify.WithCanonicalizerLogger(logger)),
		logger:        logger,
	}
}

// Name returns the stage name.
func (s *CanonicalizeStep) Name() string { return "canonicalize" }

// Do executes the canonicalization stage.
func (s *CanonicalizeStep) Do(_ context.Context, result *model.RunResult) error {
	records, stats := s.canonicalizer.Run(result.Raw)
	result.Canonical = records
	result.DroppedNoTitle = stats.NoTitle
	result.DroppedBadDate = stats.BadDate
	result.MaxPublicationDate = unify.MaxPublicationDate(records)

	s.logger.Info("canonicalization complete",
		"loaded", len(result.Raw),
		"kept", len(records),
		"dropped_no_title", stats.NoTitle,
		"dropped_bad_date", stats.BadDate,
	)

	if len(records) == 0 {
		return ErrNoRecords
	}
	return nil
}

// DedupStep merges republished duplicates under the core-title group key.
type DedupStep struct {
	logger *slog.Logger
}

// NewDedupStep creates the deduplication stage.
func NewDedupStep(logger *slog.Logger) *DedupStep {
	return &DedupStep{logger: logger}
}

// Name returns the stage name.
func (s *DedupStep) Name() string { return "deduplicate" }

// Do executes the deduplication stage.
func (s *DedupStep) Do(_ context.Context, result *model.RunResult) error {
	unified, removed := unify.Deduplicate(result.Canonical)
	result.Unified = unified
	result.DuplicatesRemoved = removed

	s.logger.Info("deduplication complete",
		"before", len(result.Canonical),
		"after", len(unified),
		"removed", removed,
	)
	return nil
}

// RelevanceStep scores topical relevance and drops off-domain records.
// An empty survivor set is pipeline-fatal.
type RelevanceStep struct {
	analyzer *analyze.Analyzer
	logger   *slog.Logger
}

// NewRelevanceStep creates the relevance filtering stage.
func NewRelevanceStep(analyzer *analyze.Analyzer, logger *slog.Logger) *RelevanceStep {
	return &RelevanceStep{analyzer: analyzer, logger: logger}
}

// Name returns the stage name.
func (s *RelevanceStep) Name() string { return "relevance_filter" }

// Do executes the relevance filtering stage.
func (s *RelevanceStep) Do(_ context.Context, result *model.RunResult) error {
	kept := make([]model.UnifiedRecord, 0, len(result.Unified))
	for _, rec := range result.Unified {
		rec.RelevanceScore = s.analyzer.RelevanceScore(rec.Title, rec.FullText)
		if analyze.Relevant(rec.RelevanceScore) {
			kept = append(kept, rec)
			continue
		}
		result.FilteredOut++
	}

	s.logger.Info("relevance filtering complete",
		"before", len(result.Unified),
		"after", len(kept),
		"filtered_out", result.FilteredOut,
	)

	result.Unified = kept
	if len(kept) == 0 {
		return ErrNoRelevantRecords
	}
	return nil
}

// DepartmentStep maps free-text department names onto the controlled
// vocabulary.
type DepartmentStep struct {
	logger *slog.Logger
}

// NewDepartmentStep creates the department unification stage.
func NewDepartmentStep(logger *slog.Logger) *DepartmentStep {
	return &DepartmentStep{logger: logger}
}

// Name returns the stage name.
func (s *DepartmentStep) Name() string { return "unify_departments" }

// Do executes the department unification stage.
func (s *DepartmentStep) Do(_ context.Context, result *model.RunResult) error {
	unify.UnifyDepartments(result.Unified)
	s.logger.Debug("department names unified", "records", len(result.Unified))
	return nil
}

// AnnotateStep computes the multi-dimensional annotation for every
// surviving record and sorts the final set by publication date, newest
// first.
type AnnotateStep struct {
	analyzer *analyze.Analyzer
	logger   *slog.Logger
}

// NewAnnotateStep creates the annotation stage.
func NewAnnotateStep(analyzer *analyze.Analyzer, logger *slog.Logger) *AnnotateStep {
	return &AnnotateStep{analyzer: analyzer, logger: logger}
}

// Name returns the stage name.
func (s *AnnotateStep) Name() string { return "annotate" }

// Do executes the annotation stage.
func (s *AnnotateStep) Do(ctx context.Context, result *model.RunResult) error {
	records := make([]model.AnnotatedRecord, 0, len(result.Unified))
	for _, rec := range result.Unified {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		records = append(records, s.analyzer.Annotate(rec))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PublicationDate.After(records[j].PublicationDate)
	})
	result.Records = records

	s.logger.Info("annotation complete", "records", len(records))
	return nil
}

// Default creates the standard pipeline with all stages in processing
// order.
func Default(analyzer *analyze.Analyzer, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	p := New(append([]Option{WithLogger(logger)}, opts...)...)
	p.AddSteps(
		NewCanonicalizeStep(logger),
		NewDedupStep(logger),
		NewRelevanceStep(analyzer, logger),
		NewDepartmentStep(logger),
		NewAnnotateStep(analyzer, logger),
	)
	return p
}
