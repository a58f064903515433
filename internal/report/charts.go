package report

import (
	"sort"

	"wodash/internal/dataset"
)

// StatusCounts builds the orders-per-user-status chart series, descending by
// count with ties broken lexicographically by label.
func StatusCounts(t *dataset.Table) []ChartPoint {
	counts := make(map[string]int)
	for _, r := range t.Rows {
		counts[r.UserStatus]++
	}
	points := make([]ChartPoint, 0, len(counts))
	for status, n := range counts {
		points = append(points, ChartPoint{Label: status, Value: float64(n)})
	}
	sortPoints(points)
	return points
}

// ProviderAmounts builds the amount-per-provider chart series, descending by
// summed amount (nil amounts contribute 0), values rounded to two decimals.
func ProviderAmounts(t *dataset.Table) []ChartPoint {
	sums := make(map[string]float64)
	for _, r := range t.Rows {
		v := 0.0
		if r.Amount != nil {
			v = *r.Amount
		}
		sums[r.Provider] += v
	}
	points := make([]ChartPoint, 0, len(sums))
	for provider, sum := range sums {
		points = append(points, ChartPoint{Label: provider, Value: round2(sum)})
	}
	sortPoints(points)
	return points
}

func sortPoints(points []ChartPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
}
