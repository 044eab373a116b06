package analyze

import (
	"math"
	"regexp"
	"strings"

	"github.com/arpi-platform/regwatch/internal/model"
)

// Scoring constants. The strictness table is weighted more heavily than the
// encouragement table, so a document mixing both leans toward its strict
// wording.
const (
	// NeutralScore is returned when no scoring keyword matched.
	// A genuinely balanced document can also land on 5.0; the two cases
	// are not distinguished in the output.
	NeutralScore = 5.0

	// MinScore and MaxScore bound the regulatory score.
	MinScore = 1.0
	MaxScore = 10.0

	strictMultiplier    = 2.0
	strictWeightCap     = 10.0
	encourageMultiplier = 1.5
	encourageWeightCap  = 8.0
)

// deadlinePattern matches a year-month mention such as 2024年3月.
// The day is irrelevant; any 4-digit year followed by a 1-2 digit month counts.
var deadlinePattern = regexp.MustCompile(`\d{4}年\d{1,2}月`)

// Analyzer computes the multi-dimensional annotation for unified records.
// It holds only immutable keyword tables and is safe for concurrent use
// across independent runs.
type Analyzer struct {
	tables Tables
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTables replaces the built-in keyword tables.
func WithTables(tables Tables) Option {
	return func(a *Analyzer) {
		a.tables = tables
	}
}

// NewAnalyzer creates an Analyzer with the default keyword tables.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{tables: DefaultTables()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Annotate computes every annotation dimension for one record.
// The input record is not modified.
func (a *Analyzer) Annotate(rec model.UnifiedRecord) model.AnnotatedRecord {
	combined := rec.CombinedText()
	lowered := strings.ToLower(combined)

	return model.AnnotatedRecord{
		UnifiedRecord:     rec,
		RegulatoryScore:   a.RegulatoryScore(lowered),
		IdentifiedDomains: a.IdentifyDomains(lowered),
		EnforcementLevel:  a.EnforcementLevel(lowered),
		HasPenalties:      a.hasPenalties(lowered),
		HasDeadlines:      deadlinePattern.MatchString(combined),
		UrgencyIndicators: a.urgencyIndicators(lowered),
	}
}

// RegulatoryScore computes the strictness score over lower-cased text.
//
// Each matched keyword contributes score × weight, where weight is the
// occurrence count times a per-table multiplier, capped per table. The final
// score is the weighted mean clamped to [MinScore, MaxScore]. A text with no
// matches at all scores exactly NeutralScore.
func (a *Analyzer) RegulatoryScore(lowered string) float64 {
	if lowered == "" {
		return NeutralScore
	}

	var weighted, total float64
	for _, kw := range a.tables.Strict {
		count := strings.Count(lowered, kw.Keyword)
		if count == 0 {
			continue
		}
		weight := math.Min(float64(count)*strictMultiplier, strictWeightCap)
		weighted += kw.Score * weight
		total += weight
	}
	for _, kw := range a.tables.Encourage {
		count := strings.Count(lowered, kw.Keyword)
		if count == 0 {
			continue
		}
		weight := math.Min(float64(count)*encourageMultiplier, encourageWeightCap)
		weighted += kw.Score * weight
		total += weight
	}

	if total == 0 {
		return NeutralScore
	}
	return math.Max(MinScore, math.Min(MaxScore, weighted/total))
}

// IdentifyDomains returns the topic categories whose keywords appear at
// least once in total, in table declaration order. Categories are
// independent; a record may match zero, one, or many.
func (a *Analyzer) IdentifyDomains(lowered string) []string {
	if lowered == "" {
		return nil
	}

	var domains []string
	for _, category := range a.tables.Domains {
		hits := 0
		for _, kw := range category.Keywords {
			hits += strings.Count(lowered, kw)
		}
		if hits >= 1 {
			domains = append(domains, category.Name)
		}
	}
	return domains
}

// EnforcementLevel classifies the legal force of the text. The tier with
// the highest keyword hit sum wins; ties go to the first declared tier, and
// zero hits everywhere defaults to the guidance tier.
func (a *Analyzer) EnforcementLevel(lowered string) model.EnforcementLevel {
	best := model.EnforcementGuidance
	bestHits := 0
	for _, rule := range a.tables.Enforcement {
		hits := 0
		for _, kw := range rule.Keywords {
			hits += strings.Count(lowered, kw)
		}
		if hits > bestHits {
			best = rule.Level
			bestHits = hits
		}
	}
	return best
}

// hasPenalties reports whether any penalty-indicator word appears.
func (a *Analyzer) hasPenalties(lowered string) bool {
	for _, word := range a.tables.Penalty {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// urgencyIndicators sums occurrence counts of the urgency words.
func (a *Analyzer) urgencyIndicators(lowered string) int {
	total := 0
	for _, word := range a.tables.Urgency {
		total += strings.Count(lowered, word)
	}
	return total
}
