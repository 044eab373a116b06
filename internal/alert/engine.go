package alert

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/arpi-platform/regwatch/internal/model"
)

// DefaultThreshold is the default regulatory score at or above which a
// record becomes an alert.
const DefaultThreshold = 8.0

// Config holds the alert selection options. Unrecognized keys in the
// configuration file are ignored by the YAML decoder.
type Config struct {
	// Threshold is the minimum regulatory score for an alert.
	Threshold float64 `yaml:"alert_threshold"`

	// Domains restricts alerts to records touching at least one of these
	// topic domains. Empty means no domain restriction.
	Domains []string `yaml:"domains_to_monitor"`

	// Departments restricts alerts to these unified departments.
	// Empty means no department restriction.
	Departments []string `yaml:"departments_to_monitor"`
}

// DefaultConfig returns the default alert configuration: threshold 8.0 and
// no allow-list restrictions.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// Engine evaluates annotated records against an alert configuration.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets a custom logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an alert Engine with the given configuration.
func NewEngine(cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Evaluate returns the ranked alert list for the record set. Records are
// kept when their regulatory score is at or above the threshold and they
// pass both allow-lists; alerts are ordered by score descending, ties
// keeping relative input order.
func (e *Engine) Evaluate(records []model.AnnotatedRecord) []model.AlertRecord {
	alerts := make([]model.AlertRecord, 0)
	for _, rec := range records {
		if rec.RegulatoryScore < e.cfg.Threshold {
			continue
		}
		if len(e.cfg.Departments) > 0 && !slices.Contains(e.cfg.Departments, rec.UnifiedDepartment) {
			continue
		}
		if len(e.cfg.Domains) > 0 && !anyOverlap(rec.IdentifiedDomains, e.cfg.Domains) {
			continue
		}

		alerts = append(alerts, model.AlertRecord{
			Title:           rec.Title,
			URL:             rec.URL,
			Department:      rec.UnifiedDepartment,
			PublicationDate: rec.PublicationDate,
			RegulatoryScore: rec.RegulatoryScore,
			AffectedDomains: rec.IdentifiedDomains,
			RiskFactors:     riskFactors(rec),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].RegulatoryScore > alerts[j].RegulatoryScore
	})

	e.logger.Info("alert evaluation complete",
		"records", len(records),
		"alerts", len(alerts),
		"threshold", e.cfg.Threshold,
	)
	return alerts
}

// riskFactors derives the explanatory labels for one alert. Each check is
// independent and every applicable label is included, in this fixed order.
func riskFactors(rec model.AnnotatedRecord) []string {
	var factors []string
	if rec.HasPenalties {
		factors = append(factors, model.RiskPenaltyClause)
	}
	if rec.HasDeadlines {
		factors = append(factors, model.RiskDeadline)
	}
	if rec.UrgencyIndicators > 0 {
		factors = append(factors, model.RiskUrgency)
	}
	if rec.EnforcementLevel.IsBinding() {
		factors = append(factors, model.RiskHighEnforcement)
	}
	return factors
}

// anyOverlap reports whether the two string sets share at least one element.
func anyOverlap(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
