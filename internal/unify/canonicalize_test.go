package unify

import (
	"testing"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

// TestCanonicalize tests the per-record validation rules.
func TestCanonicalize(t *testing.T) {
	t.Parallel()

	c := NewCanonicalizer()

	testCases := []struct {
		name string
		raw  model.RawRecord
		keep bool
	}{
		{
			name: "valid record",
			raw:  model.RawRecord{Title: "某办法", PublicationDate: "2023-06-01"},
			keep: true,
		},
		{
			name: "empty title dropped",
			raw:  model.RawRecord{Title: "", PublicationDate: "2023-06-01"},
			keep: false,
		},
		{
			name: "whitespace title dropped",
			raw:  model.RawRecord{Title: "   ", PublicationDate: "2023-06-01"},
			keep: false,
		},
		{
			name: "unparseable date dropped",
			raw:  model.RawRecord{Title: "某办法", PublicationDate: "2023年6月1日"},
			keep: false,
		},
		{
			name: "no fallback parse for other layouts",
			raw:  model.RawRecord{Title: "某办法", PublicationDate: "06/01/2023"},
			keep: false,
		},
		{
			name: "empty date dropped",
			raw:  model.RawRecord{Title: "某办法", PublicationDate: ""},
			keep: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, ok := c.Canonicalize(tc.raw)
			if ok != tc.keep {
				t.Errorf("got keep=%v, expected %v", ok, tc.keep)
			}
		})
	}
}

// TestCanonicalizerRun tests batch attrition counting and order preservation.
func TestCanonicalizerRun(t *testing.T) {
	t.Parallel()

	c := NewCanonicalizer()

	raws := []model.RawRecord{
		{Title: "甲", PublicationDate: "2023-01-01"},
		{Title: "", PublicationDate: "2023-01-02"},
		{Title: "乙", PublicationDate: "bad-date"},
		{Title: "丙", PublicationDate: "2023-01-03"},
	}

	records, stats := c.Run(raws)

	if len(records) != 2 {
		t.Fatalf("got %d records, expected 2", len(records))
	}
	if records[0].Title != "甲" || records[1].Title != "丙" {
		t.Errorf("order not preserved: %q, %q", records[0].Title, records[1].Title)
	}
	if stats.NoTitle != 1 {
		t.Errorf("NoTitle = %d, expected 1", stats.NoTitle)
	}
	if stats.BadDate != 1 {
		t.Errorf("BadDate = %d, expected 1", stats.BadDate)
	}
}

// TestMaxPublicationDate tests the metadata upper bound over the unfiltered
// canonical set.
func TestMaxPublicationDate(t *testing.T) {
	t.Parallel()

	if !MaxPublicationDate(nil).IsZero() {
		t.Error("empty set should yield the zero time")
	}

	records := []model.CanonicalRecord{
		{PublicationDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{PublicationDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{PublicationDate: time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	want := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	if got := MaxPublicationDate(records); !got.Equal(want) {
		t.Errorf("got %v, expected %v", got, want)
	}
}
