package report

import (
	"sort"

	"wodash/internal/dataset"
)

// EvaluateCompliance computes per-provider percentage breakdowns over the
// fixed system-status categories and flags goal attainment: attention share
// at most 15% and reviewed+authorized share at least 85%. The second return
// is false when the table lacks a SYSTEM_STATUS column, in which case the
// caller must surface an insufficient-data signal instead of a table.
//
// Threshold comparisons use full-precision percentages; the two-decimal
// rounding on the returned rows is display-only.
func EvaluateCompliance(t *dataset.Table) ([]ComplianceRow, bool) {
	if !t.HasColumn(dataset.ColSystemStatus) {
		return nil, false
	}

	folios := make(map[string]map[string]int)
	for _, r := range t.Rows {
		if folios[r.Provider] == nil {
			folios[r.Provider] = make(map[string]int)
		}
		folios[r.Provider][r.SystemStatus]++
	}

	providers := make([]string, 0, len(folios))
	for p := range folios {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	rows := make([]ComplianceRow, 0, len(providers))
	for _, p := range providers {
		total := 0
		for _, n := range folios[p] {
			total += n
		}

		pct := func(status string) float64 {
			if total == 0 {
				return 0
			}
			return float64(folios[p][status]) / float64(total) * 100
		}
		aten := pct(StatusAttention)
		visado := pct(StatusReviewed)
		auto := pct(StatusAuthorized)
		composite := visado + auto

		rows = append(rows, ComplianceRow{
			Provider:      p,
			Folios:        total,
			PctAttention:  round2(aten),
			PctReviewed:   round2(visado),
			PctAuthorized: round2(auto),
			PctComposite:  round2(composite),
			MeetsGoal:     aten <= maxAttentionPct && composite >= minResolvedPct,
		})
	}
	return rows, true
}
