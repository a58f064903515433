package report

import "wodash/internal/dataset"

// ApplyFilter produces the filtered view of a table: a stable subsequence of
// its rows with the column set unchanged. Predicates are conjunctive across
// dimensions and membership (OR) within one.
//
// The date predicate is always applied. Default policy when the selection is
// incomplete: Year 0 resolves to the most recent year present in the data,
// an empty Months set resolves to all twelve months. Rows with a nil
// creation date never match the date predicate.
func ApplyFilter(t *dataset.Table, spec FilterSpec) *dataset.Table {
	year := spec.Year
	if year == 0 {
		year = t.LatestYear()
	}
	months := intSet(spec.Months)
	if len(months) == 0 {
		for m := 1; m <= 12; m++ {
			months[m] = struct{}{}
		}
	}
	orderTypes := stringSet(spec.OrderTypes)
	providers := stringSet(spec.Providers)
	statuses := stringSet(spec.UserStatuses)

	filtered := &dataset.Table{Columns: t.Columns}
	for _, r := range t.Rows {
		if len(orderTypes) > 0 {
			if _, ok := orderTypes[r.OrderType]; !ok {
				continue
			}
		}
		if r.CreationDate == nil || r.CreationDate.Year() != year {
			continue
		}
		if _, ok := months[int(r.CreationDate.Month())]; !ok {
			continue
		}
		if len(providers) > 0 {
			if _, ok := providers[r.Provider]; !ok {
				continue
			}
		}
		if len(statuses) > 0 {
			if _, ok := statuses[r.UserStatus]; !ok {
				continue
			}
		}
		filtered.Rows = append(filtered.Rows, r)
	}
	return filtered
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
