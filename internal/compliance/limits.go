package compliance

import (
	"sort"

	id "canna-gate/pkg/domain"
)

// evaluateLimits compares cart category totals against the jurisdiction's
// purchase limits. One violation per over-limit category; the check never
// stops at the first. A category absent from the limits map is unrestricted,
// and a total exactly at the limit passes - only strictly-over totals flag.
func evaluateLimits(totals map[id.Category]float64, limits map[id.Category]float64, result *Result) {
	// Deterministic violation order for callers and tests.
	categories := make([]id.Category, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	for _, category := range categories {
		limit, restricted := limits[category]
		if !restricted {
			continue
		}
		total := totals[category]
		if total > limit {
			result.Violations = append(result.Violations, Violation{
				Kind:         ViolationCategoryLimit,
				Jurisdiction: result.Jurisdiction,
				Category:     category,
				Total:        total,
				Limit:        limit,
			})
		}
	}
}
