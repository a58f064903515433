package report

import "wodash/internal/dataset"

// Build renders the dashboard for one filter selection. An empty filtered
// result yields the designated empty state with no aggregates computed.
func Build(t *dataset.Table, spec FilterSpec) *Report {
	filtered := ApplyFilter(t, spec)
	rep := &Report{Filter: spec}
	if len(filtered.Rows) == 0 {
		rep.Empty = true
		return rep
	}

	rep.Summary = Summarize(filtered)
	rep.CountPivot = CountPivot(filtered)
	rep.AmountPivot = AmountPivot(filtered)
	rep.Compliance, rep.ComplianceAvailable = EvaluateCompliance(filtered)
	rep.StatusChart = StatusCounts(filtered)
	rep.ProviderAmountChart = ProviderAmounts(filtered)
	rep.Detail = filtered.Rows
	return rep
}
