package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

// Granularity selects the period size for the temporal trend.
type Granularity string

// Supported period granularities.
const (
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ErrInvalidGranularity is returned for an unrecognized granularity name.
var ErrInvalidGranularity = errors.New("invalid granularity: must be month, quarter, or year")

// ParseGranularity validates a user-supplied granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityMonth, GranularityQuarter, GranularityYear:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
}

// PeriodKey formats a date into its period bucket. Keys sort
// lexicographically in chronological order.
func (g Granularity) PeriodKey(t time.Time) string {
	switch g {
	case GranularityQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
	case GranularityYear:
		return fmt.Sprintf("%04d", t.Year())
	default:
		return t.Format("2006-01")
	}
}

// TrendPoint summarizes the regulatory scores of one period.
type TrendPoint struct {
	// Period is the bucket key, e.g. "2023-06", "2023-Q2", or "2023".
	Period string `json:"period"`

	// Count is the number of records published in the period.
	Count int `json:"count"`

	// Mean, Min, and Max summarize the regulatory scores of the period.
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// TemporalTrend groups records by publication period and summarizes the
// regulatory score per period. Periods with no records are omitted, not
// zero-filled. Results are sorted chronologically.
func TemporalTrend(records []model.AnnotatedRecord, g Granularity) []TrendPoint {
	type bucket struct {
		count int
		sum   float64
		min   float64
		max   float64
	}

	buckets := make(map[string]*bucket)
	for _, rec := range records {
		key := g.PeriodKey(rec.PublicationDate)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{min: rec.RegulatoryScore, max: rec.RegulatoryScore}
			buckets[key] = b
		}
		b.count++
		b.sum += rec.RegulatoryScore
		if rec.RegulatoryScore < b.min {
			b.min = rec.RegulatoryScore
		}
		if rec.RegulatoryScore > b.max {
			b.max = rec.RegulatoryScore
		}
	}

	points := make([]TrendPoint, 0, len(buckets))
	for key, b := range buckets {
		points = append(points, TrendPoint{
			Period: key,
			Count:  b.count,
			Mean:   b.sum / float64(b.count),
			Min:    b.min,
			Max:    b.max,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points
}
