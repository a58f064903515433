package report

import (
	"math"
	"sort"

	"wodash/internal/dataset"
)

// Summarize computes the scalar KPIs of a filtered table. The top provider
// is the one with the most rows; ties break to the provider first seen in
// original row order. Returns nil for an empty table, which callers exclude
// upstream via the empty-result check.
func Summarize(t *dataset.Table) *Summary {
	if len(t.Rows) == 0 {
		return nil
	}

	var totalAmount float64
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, r := range t.Rows {
		if r.Amount != nil {
			totalAmount += *r.Amount
		}
		if _, ok := firstSeen[r.Provider]; !ok {
			firstSeen[r.Provider] = i
		}
		counts[r.Provider]++
	}

	top := ""
	for provider, n := range counts {
		if top == "" ||
			n > counts[top] ||
			(n == counts[top] && firstSeen[provider] < firstSeen[top]) {
			top = provider
		}
	}

	return &Summary{
		TotalOrders:          len(t.Rows),
		TotalAmount:          round2(totalAmount),
		TopProvider:          top,
		AvgOrdersPerProvider: round2(float64(len(t.Rows)) / float64(len(counts))),
	}
}

// CountPivot cross-tabulates row counts by provider and user status, with a
// TOTAL_ORDERS column and a TOTAL GENERAL row.
func CountPivot(t *dataset.Table) *Pivot {
	return buildPivot(t, CountTotalColumn, false, func(r dataset.Record) float64 {
		return 1
	})
}

// AmountPivot cross-tabulates amount sums by provider and user status, with
// an IMPORTE_TOTAL column and a TOTAL GENERAL row. Nil amounts contribute 0;
// cells are rounded to two decimals after all summation.
func AmountPivot(t *dataset.Table) *Pivot {
	return buildPivot(t, AmountTotalColumn, true, func(r dataset.Record) float64 {
		if r.Amount == nil {
			return 0
		}
		return *r.Amount
	})
}

// buildPivot accumulates value(row) into (provider, user status) cells,
// zero-fills missing combinations and synthesizes both totals. Totals are
// recomputed from the cells on every call, never cached.
func buildPivot(t *dataset.Table, totalColumn string, round bool, value func(dataset.Record) float64) *Pivot {
	if len(t.Rows) == 0 {
		return nil
	}

	cells := make(map[string]map[string]float64)
	statusSet := make(map[string]struct{})
	for _, r := range t.Rows {
		if cells[r.Provider] == nil {
			cells[r.Provider] = make(map[string]float64)
		}
		cells[r.Provider][r.UserStatus] += value(r)
		statusSet[r.UserStatus] = struct{}{}
	}

	statuses := make([]string, 0, len(statusSet))
	for s := range statusSet {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	providers := make([]string, 0, len(cells))
	for p := range cells {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	pivot := &Pivot{Columns: statuses, TotalColumn: totalColumn}
	columnTotals := make(map[string]float64, len(statuses))
	var grandTotal float64

	for _, p := range providers {
		row := PivotRow{Provider: p, Cells: make(map[string]float64, len(statuses))}
		for _, s := range statuses {
			v := cells[p][s]
			if round {
				v = round2(v)
			}
			row.Cells[s] = v
			row.Total += v
			columnTotals[s] += v
		}
		if round {
			row.Total = round2(row.Total)
		}
		grandTotal += row.Total
		pivot.Rows = append(pivot.Rows, row)
	}

	totalRow := PivotRow{Provider: TotalRowLabel, Cells: make(map[string]float64, len(statuses))}
	for _, s := range statuses {
		v := columnTotals[s]
		if round {
			v = round2(v)
		}
		totalRow.Cells[s] = v
	}
	totalRow.Total = grandTotal
	if round {
		totalRow.Total = round2(grandTotal)
	}
	pivot.Rows = append(pivot.Rows, totalRow)

	return pivot
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
