package unify

import (
	"regexp"
	"sort"

	"github.com/arpi-platform/regwatch/internal/model"
)

// coreTitlePattern extracts the first 《...》 span from a title.
// Government sources republish the same document under varying outer titles
// (announcement, consultation draft, official release) while the bracketed
// document name stays stable.
var coreTitlePattern = regexp.MustCompile(`《([^》]+)》`)

// GroupKey derives the deduplication grouping key from a title: the first
// 《...》 span when present, otherwise the title verbatim. Within one run,
// records sharing a group key are considered the same logical document.
func GroupKey(title string) string {
	if m := coreTitlePattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return title
}

// Deduplicate keeps exactly one record per group key and returns the chosen
// representatives plus the number of records merged away.
//
// Within a group the kept record is the one sorting first under the
// composite order: publication date descending, then content length
// descending, with remaining ties broken by input order. Later
// republications are usually both more current and more complete, so
// "newest, then longest" approximates the best available version.
//
// The output is sorted by group key ascending, so the same input set yields
// the same output regardless of original row order.
func Deduplicate(records []model.CanonicalRecord) ([]model.UnifiedRecord, int) {
	unified := make([]model.UnifiedRecord, 0, len(records))
	for _, rec := range records {
		unified = append(unified, model.UnifiedRecord{
			CanonicalRecord: rec,
			GroupKey:        GroupKey(rec.Title),
		})
	}

	// Stable sort: equal (key, date, length) triples keep input order,
	// which makes the final tie-break deterministic.
	sort.SliceStable(unified, func(i, j int) bool {
		a, b := unified[i], unified[j]
		if a.GroupKey != b.GroupKey {
			return a.GroupKey < b.GroupKey
		}
		if !a.PublicationDate.Equal(b.PublicationDate) {
			return a.PublicationDate.After(b.PublicationDate)
		}
		return a.ContentLength > b.ContentLength
	})

	kept := make([]model.UnifiedRecord, 0, len(unified))
	removed := 0
	var lastKey string
	for i, rec := range unified {
		if i > 0 && rec.GroupKey == lastKey {
			removed++
			continue
		}
		kept = append(kept, rec)
		lastKey = rec.GroupKey
	}

	return kept, removed
}
