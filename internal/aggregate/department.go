package aggregate

import (
	"sort"

	"github.com/arpi-platform/regwatch/internal/model"
)

// HighIntensityThreshold is the score above which a record counts as
// high-intensity regulation in the department distribution.
const HighIntensityThreshold = 7.0

// topDomainLimit caps the per-department top domain list.
const topDomainLimit = 3

// DomainCount pairs a topic domain with its occurrence count.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// DepartmentStats summarizes the records of one unified department.
type DepartmentStats struct {
	// Department is the unified department name.
	Department string `json:"department"`

	// Count is the number of records issued by the department.
	Count int `json:"count"`

	// MeanScore is the mean regulatory score across the department's
	// records.
	MeanScore float64 `json:"mean_score"`

	// HighIntensity counts records scoring above HighIntensityThreshold.
	HighIntensity int `json:"high_intensity"`

	// TopDomains lists the department's most frequent topic domains,
	// at most three, ties broken by first-seen order.
	TopDomains []DomainCount `json:"top_domains"`
}

// DepartmentDistribution groups records by unified department.
// Departments appear in first-seen input order, which is stable because the
// annotated set is already deterministically ordered.
func DepartmentDistribution(records []model.AnnotatedRecord) []DepartmentStats {
	type group struct {
		count         int
		sum           float64
		highIntensity int
		domainCounts  map[string]int
		domainOrder   []string
	}

	groups := make(map[string]*group)
	var order []string

	for _, rec := range records {
		dept := rec.UnifiedDepartment
		g, ok := groups[dept]
		if !ok {
			g = &group{domainCounts: make(map[string]int)}
			groups[dept] = g
			order = append(order, dept)
		}
		g.count++
		g.sum += rec.RegulatoryScore
		if rec.RegulatoryScore > HighIntensityThreshold {
			g.highIntensity++
		}
		for _, domain := range rec.IdentifiedDomains {
			if _, seen := g.domainCounts[domain]; !seen {
				g.domainOrder = append(g.domainOrder, domain)
			}
			g.domainCounts[domain]++
		}
	}

	stats := make([]DepartmentStats, 0, len(order))
	for _, dept := range order {
		g := groups[dept]
		stats = append(stats, DepartmentStats{
			Department:    dept,
			Count:         g.count,
			MeanScore:     g.sum / float64(g.count),
			HighIntensity: g.highIntensity,
			TopDomains:    topDomains(g.domainCounts, g.domainOrder),
		})
	}
	return stats
}

// topDomains ranks domains by occurrence count, descending, keeping
// first-seen order for ties, and truncates to the top three.
func topDomains(counts map[string]int, firstSeen []string) []DomainCount {
	ranked := make([]DomainCount, 0, len(firstSeen))
	for _, domain := range firstSeen {
		ranked = append(ranked, DomainCount{Domain: domain, Count: counts[domain]})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > topDomainLimit {
		ranked = ranked[:topDomainLimit]
	}
	return ranked
}
