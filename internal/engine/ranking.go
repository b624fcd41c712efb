package engine

import "sort"

// RankFindings returns a copy of findings ordered by severity rank. The sort
// is stable: findings with equal rank keep their rule-evaluation order.
// Action items are never re-sorted.
func RankFindings(findings []Finding) []Finding {
	sorted := make([]Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() < sorted[j].Severity.Rank()
	})
	return sorted
}
