package model

import (
	"time"
	"unicode/utf8"
)

// Source identifies the origin scraper of a raw record batch.
type Source string

// Known policy sources. New sources can be added via the configuration
// file without code changes; these constants cover the built-in defaults.
const (
	// SourceCAC is the Cyberspace Administration of China.
	SourceCAC Source = "cac"

	// SourceMIIT is the Ministry of Industry and Information Technology.
	SourceMIIT Source = "miit"

	// SourceTC260 is the National Information Security Standardization
	// Technical Committee (TC260).
	SourceTC260 Source = "tc260"
)

// RawRecord is one scraped policy document exactly as delivered by a source
// batch. All fields are unvalidated free text. RawRecords are immutable once
// created; later stages derive new record types instead of mutating them.
type RawRecord struct {
	// Title is the document title. May be empty; empty titles are dropped
	// by the canonicalizer.
	Title string `json:"title"`

	// URL is the document location. Unique per source but not guaranteed
	// globally unique across sources.
	URL string `json:"url"`

	// PublicationDate is the free-form date string from the source.
	// It is validated against DateFormat by the canonicalizer.
	PublicationDate string `json:"publication_date"`

	// IssuingDepartment is the free-text issuing department name.
	IssuingDepartment string `json:"issuing_department"`

	// FullText is the document body.
	FullText string `json:"full_text"`

	// Source tags the origin scraper.
	Source Source `json:"source"`
}

// DateFormat is the only accepted publication date layout. Records whose
// date does not parse against this exact layout are dropped; there is no
// fallback parse.
const DateFormat = "2006-01-02"

// CanonicalRecord is a RawRecord whose publication date parsed and whose
// text fields are guaranteed non-empty-safe (empty string, never missing).
type CanonicalRecord struct {
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	PublicationDate   time.Time `json:"publication_date"`
	IssuingDepartment string    `json:"issuing_department"`
	FullText          string    `json:"full_text"`
	Source            Source    `json:"source"`

	// ContentLength is the character count of FullText, fixed at
	// canonicalization time and reused as a deduplication tie-break input.
	ContentLength int `json:"content_length"`
}

// NewCanonicalRecord builds a CanonicalRecord from validated fields and
// computes the content length. The length is counted in runes, not bytes,
// so CJK text is measured the same way regardless of encoding.
func NewCanonicalRecord(raw RawRecord, date time.Time) CanonicalRecord {
	return CanonicalRecord{
		Title:             raw.Title,
		URL:               raw.URL,
		PublicationDate:   date,
		IssuingDepartment: raw.IssuingDepartment,
		FullText:          raw.FullText,
		Source:            raw.Source,
		ContentLength:     utf8.RuneCountInString(raw.FullText),
	}
}

// UnifiedRecord is the single representative chosen per deduplication group.
// GroupKey is the fuzzy identity key the record was grouped under.
// RelevanceScore and UnifiedDepartment are filled in by the relevance filter
// and department canonicalizer stages respectively.
type UnifiedRecord struct {
	CanonicalRecord

	// GroupKey is the core title used for deduplication: the first
	// 《...》 span of the title, or the full title when no span exists.
	GroupKey string `json:"core_title"`

	// RelevanceScore is the integer topical relevance score. Records at or
	// below the relevance threshold never reach annotation.
	RelevanceScore int `json:"ai_relevance_score"`

	// UnifiedDepartment is the controlled-vocabulary department name.
	UnifiedDepartment string `json:"unified_department"`
}

// AnnotatedRecord is a UnifiedRecord plus the multi-dimensional quantitative
// assessment produced by the annotator.
type AnnotatedRecord struct {
	UnifiedRecord

	// RegulatoryScore is the strictness score in [1.0, 10.0].
	// 1 means strongly innovation-encouraging, 10 means extremely strict.
	// 5.0 is the neutral default when no scoring keyword matched.
	RegulatoryScore float64 `json:"regulatory_score"`

	// IdentifiedDomains lists the matched topic categories in table order.
	IdentifiedDomains []string `json:"identified_domains"`

	// EnforcementLevel is the legal-force classification.
	EnforcementLevel EnforcementLevel `json:"enforcement_level"`

	// HasPenalties is true when a penalty-indicator word appears anywhere
	// in the combined title and body text.
	HasPenalties bool `json:"has_penalties"`

	// HasDeadlines is true when the combined text mentions a year-month
	// date such as 2024年3月.
	HasDeadlines bool `json:"has_deadlines"`

	// UrgencyIndicators counts occurrences of urgency words across the
	// combined text.
	UrgencyIndicators int `json:"urgency_indicators"`
}

// CombinedText returns the title and body joined with a space. All keyword
// scoring operates on this concatenation.
func (r CanonicalRecord) CombinedText() string {
	return r.Title + " " + r.FullText
}
