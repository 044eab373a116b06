package unify

import (
	"log/slog"
	"strings"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

// Canonicalizer validates raw records into canonical ones. Records that
// cannot be validated are dropped and counted; per-record drops are
// expected attrition, never an error.
type Canonicalizer struct {
	logger *slog.Logger
}

// CanonicalizerOption configures a Canonicalizer.
type CanonicalizerOption func(*Canonicalizer)

// WithCanonicalizerLogger sets a custom logger.
func WithCanonicalizerLogger(logger *slog.Logger) CanonicalizerOption {
	return func(c *Canonicalizer) {
		c.logger = logger
	}
}

// NewCanonicalizer creates a Canonicalizer.
func NewCanonicalizer(opts ...CanonicalizerOption) *Canonicalizer {
	c := &Canonicalizer{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// DropStats counts the records removed during canonicalization.
type DropStats struct {
	// NoTitle counts records dropped for a missing title.
	NoTitle int

	// BadDate counts records dropped for an unparseable date.
	BadDate int
}

// Canonicalize validates one raw record. The boolean result is false when
// the record must be dropped.
//
// Rules, applied in order: an empty title drops the record; a publication
// date that does not parse against model.DateFormat drops the record (no
// fallback parse); missing department or body text becomes the empty string.
func (c *Canonicalizer) Canonicalize(raw model.RawRecord) (model.CanonicalRecord, bool) {
	if strings.TrimSpace(raw.Title) == "" {
		return model.CanonicalRecord{}, false
	}

	date, err := time.Parse(model.DateFormat, strings.TrimSpace(raw.PublicationDate))
	if err != nil {
		return model.CanonicalRecord{}, false
	}

	return model.NewCanonicalRecord(raw, date), true
}

// Run canonicalizes a batch, returning the surviving records and drop
// counters. Input order is preserved.
func (c *Canonicalizer) Run(raws []model.RawRecord) ([]model.CanonicalRecord, DropStats) {
	records := make([]model.CanonicalRecord, 0, len(raws))
	var stats DropStats

	for _, raw := range raws {
		if strings.TrimSpace(raw.Title) == "" {
			stats.NoTitle++
			c.logger.Debug("dropping record without title", "url", raw.URL, "source", raw.Source)
			continue
		}
		rec, ok := c.Canonicalize(raw)
		if !ok {
			stats.BadDate++
			c.logger.Debug("dropping record with unparseable date",
				"title", raw.Title,
				"date", raw.PublicationDate,
				"source", raw.Source,
			)
			continue
		}
		records = append(records, rec)
	}

	return records, stats
}

// MaxPublicationDate returns the latest publication date in the canonical
// set. The zero time is returned for an empty set. This runs before any
// filtering so downstream consumers get a stable time-axis upper bound.
func MaxPublicationDate(records []model.CanonicalRecord) time.Time {
	var maxDate time.Time
	for _, rec := range records {
		if rec.PublicationDate.After(maxDate) {
			maxDate = rec.PublicationDate
		}
	}
	return maxDate
}
