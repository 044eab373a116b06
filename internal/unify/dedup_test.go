package unify

import (
	"testing"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// TestGroupKey tests core title extraction.
func TestGroupKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "bracketed span extracted",
			title:    "关于发布《生成式人工智能服务管理暂行办法》的公告",
			expected: "生成式人工智能服务管理暂行办法",
		},
		{
			name:     "first span wins",
			title:    "《甲办法》与《乙办法》的对照",
			expected: "甲办法",
		},
		{
			name:     "no span falls back to full title",
			title:    "工作动态通报",
			expected: "工作动态通报",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := GroupKey(tc.title); got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestDeduplicateNewestWins tests that a newer date beats a longer body.
func TestDeduplicateNewestWins(t *testing.T) {
	t.Parallel()

	records := []model.CanonicalRecord{
		{Title: "《示例办法》发布", PublicationDate: date(2023, 1, 1), ContentLength: 500},
		{Title: "关于《示例办法》的解读", PublicationDate: date(2023, 6, 1), ContentLength: 300},
	}

	unified, removed := Deduplicate(records)

	if removed != 1 {
		t.Fatalf("removed = %d, expected 1", removed)
	}
	if len(unified) != 1 {
		t.Fatalf("got %d records, expected 1", len(unified))
	}
	if !unified[0].PublicationDate.Equal(date(2023, 6, 1)) {
		t.Errorf("kept the older record: %v", unified[0].PublicationDate)
	}
}

// TestDeduplicateLengthBreaksDateTie tests the content length tie-break.
func TestDeduplicateLengthBreaksDateTie(t *testing.T) {
	t.Parallel()

	records := []model.CanonicalRecord{
		{Title: "《同日办法》摘要", PublicationDate: date(2023, 3, 1), ContentLength: 100},
		{Title: "《同日办法》全文", PublicationDate: date(2023, 3, 1), ContentLength: 900},
	}

	unified, _ := Deduplicate(records)

	if len(unified) != 1 {
		t.Fatalf("got %d records, expected 1", len(unified))
	}
	if unified[0].ContentLength != 900 {
		t.Errorf("kept length %d, expected 900", unified[0].ContentLength)
	}
}

// TestDeduplicateOrderIndependence tests that the chosen representative
// does not depend on input row order.
func TestDeduplicateOrderIndependence(t *testing.T) {
	t.Parallel()

	a := model.CanonicalRecord{Title: "《办法》草案", URL: "u1", PublicationDate: date(2023, 1, 1), ContentLength: 500}
	b := model.CanonicalRecord{Title: "《办法》正式稿", URL: "u2", PublicationDate: date(2023, 6, 1), ContentLength: 300}

	forward, _ := Deduplicate([]model.CanonicalRecord{a, b})
	backward, _ := Deduplicate([]model.CanonicalRecord{b, a})

	if forward[0].URL != backward[0].URL {
		t.Errorf("representative depends on input order: %q vs %q", forward[0].URL, backward[0].URL)
	}
	if forward[0].URL != "u2" {
		t.Errorf("kept %q, expected the newer record u2", forward[0].URL)
	}
}

// TestDeduplicateDistinctKeysUntouched tests that records with different
// group keys all survive, sorted by key.
func TestDeduplicateDistinctKeysUntouched(t *testing.T) {
	t.Parallel()

	records := []model.CanonicalRecord{
		{Title: "乙文件", PublicationDate: date(2023, 1, 1)},
		{Title: "甲文件", PublicationDate: date(2023, 1, 2)},
	}

	unified, removed := Deduplicate(records)

	if removed != 0 {
		t.Errorf("removed = %d, expected 0", removed)
	}
	if len(unified) != 2 {
		t.Fatalf("got %d records, expected 2", len(unified))
	}
	// Output is ordered by group key ascending for stable overall ordering.
	if unified[0].GroupKey >= unified[1].GroupKey {
		t.Errorf("output not sorted by key: %q, %q", unified[0].GroupKey, unified[1].GroupKey)
	}
}

// TestDeduplicateFullTieKeepsFirstInput tests the deterministic final
// tie-break when date and length both tie.
func TestDeduplicateFullTieKeepsFirstInput(t *testing.T) {
	t.Parallel()

	records := []model.CanonicalRecord{
		{Title: "《平局》", URL: "first", PublicationDate: date(2023, 2, 1), ContentLength: 42},
		{Title: "《平局》", URL: "second", PublicationDate: date(2023, 2, 1), ContentLength: 42},
	}

	unified, _ := Deduplicate(records)

	if len(unified) != 1 {
		t.Fatalf("got %d records, expected 1", len(unified))
	}
	if unified[0].URL != "first" {
		t.Errorf("kept %q, expected the first input record", unified[0].URL)
	}
}
