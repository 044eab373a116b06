package analyze

import "strings"

// RelevanceThreshold is the fixed admission policy for the relevance
// filter: a record survives only when its relevance score is strictly
// greater than this value. Unlike the alert threshold, it is not
// configurable.
const RelevanceThreshold = 4

// RelevanceScore computes the integer topical relevance score for a record.
// Every keyword contributes its occurrence count in the lower-cased
// concatenation of title and body, multiplied by the keyword's tier weight.
func (a *Analyzer) RelevanceScore(title, fullText string) int {
	content := strings.ToLower(title) + " " + strings.ToLower(fullText)

	score := 0
	for _, kw := range a.tables.Relevance {
		count := strings.Count(content, kw.Keyword)
		if count > 0 {
			score += count * kw.Weight
		}
	}
	return score
}

// Relevant reports whether a score passes the admission policy.
func Relevant(score int) bool {
	return score > RelevanceThreshold
}
