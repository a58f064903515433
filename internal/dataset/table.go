package dataset

import (
	"sort"
	"strings"
	"time"
)

// Canonical column names after normalization. Any other column is carried
// opaquely in Record.Extra and never referenced by aggregation logic.
const (
	ColOrderID      = "ORDER_ID"
	ColOrderType    = "ORDER_TYPE"
	ColCreationDate = "CREATION_DATE"
	ColAmount       = "AMOUNT"
	ColProvider     = "PROVIDER"
	ColUserStatus   = "USER_STATUS"
	ColSystemStatus = "SYSTEM_STATUS"
)

// Record is one work-order row (a folio). CreationDate and Amount are nil
// when the source cell was empty or unparseable.
type Record struct {
	OrderID      string            `json:"order_id"`
	OrderType    string            `json:"order_type"`
	CreationDate *time.Time        `json:"creation_date"`
	Amount       *float64          `json:"amount"`
	Provider     string            `json:"provider"`
	UserStatus   string            `json:"user_status"`
	SystemStatus string            `json:"system_status"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Table is an ordered sequence of records sharing one column set.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// NormalizeColumn applies the canonical header normalization: surrounding
// whitespace stripped, uppercased.
func NormalizeColumn(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// HasColumn reports whether the normalized column name was present in the
// uploaded sheet.
func (t *Table) HasColumn(name string) bool {
	want := NormalizeColumn(name)
	for _, c := range t.Columns {
		if c == want {
			return true
		}
	}
	return false
}

// Options holds the distinct values available per filterable dimension,
// used to populate the filter widgets.
type Options struct {
	OrderTypes   []string `json:"order_types"`
	Years        []int    `json:"years"`
	Months       []int    `json:"months"`
	Providers    []string `json:"providers"`
	UserStatuses []string `json:"user_statuses"`
}

// FilterOptions enumerates the distinct non-empty values of each filterable
// dimension. String dimensions are sorted lexicographically; years descend
// so the most recent year lists first.
func (t *Table) FilterOptions() Options {
	orderTypes := map[string]struct{}{}
	years := map[int]struct{}{}
	months := map[int]struct{}{}
	providers := map[string]struct{}{}
	statuses := map[string]struct{}{}

	for _, r := range t.Rows {
		if r.OrderType != "" {
			orderTypes[r.OrderType] = struct{}{}
		}
		if r.CreationDate != nil {
			years[r.CreationDate.Year()] = struct{}{}
			months[int(r.CreationDate.Month())] = struct{}{}
		}
		if r.Provider != "" {
			providers[r.Provider] = struct{}{}
		}
		if r.UserStatus != "" {
			statuses[r.UserStatus] = struct{}{}
		}
	}

	opts := Options{
		OrderTypes:   sortedKeys(orderTypes),
		Providers:    sortedKeys(providers),
		UserStatuses: sortedKeys(statuses),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	sort.Ints(opts.Months)
	return opts
}

// LatestYear returns the most recent year present among parseable creation
// dates, or 0 when the table has none.
func (t *Table) LatestYear() int {
	latest := 0
	for _, r := range t.Rows {
		if r.CreationDate != nil && r.CreationDate.Year() > latest {
			latest = r.CreationDate.Year()
		}
	}
	return latest
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
