package report

import "wodash/internal/dataset"

// Labels for the synthesized pivot totals.
const (
	TotalRowLabel     = "TOTAL GENERAL"
	CountTotalColumn  = "TOTAL_ORDERS"
	AmountTotalColumn = "IMPORTE_TOTAL"
)

// System-status categories evaluated against the compliance goal.
const (
	StatusAttention  = "ATEN"
	StatusReviewed   = "VISADO"
	StatusAuthorized = "AUTO"
)

// Goal thresholds. Comparisons always use full-precision percentages;
// rounding happens only on the response payload.
const (
	maxAttentionPct = 15.0
	minResolvedPct  = 85.0
)

// FilterSpec is the user's filter selection. Empty slices mean "no filtering
// on that dimension"; Year 0 and empty Months fall back to the default
// policy described in ApplyFilter.
type FilterSpec struct {
	OrderTypes   []string `json:"order_types"`
	Year         int      `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Months       []int    `json:"months" validate:"omitempty,dive,gte=1,lte=12"`
	Providers    []string `json:"providers"`
	UserStatuses []string `json:"user_statuses"`
}

// Summary holds the scalar KPIs of a filtered table.
type Summary struct {
	TotalOrders          int     `json:"total_orders"`
	TotalAmount          float64 `json:"total_amount"`
	TopProvider          string  `json:"top_provider"`
	AvgOrdersPerProvider float64 `json:"avg_orders_per_provider"`
}

// PivotRow is one provider row of a pivot table, plus the synthesized total
// row labeled TotalRowLabel.
type PivotRow struct {
	Provider string             `json:"provider"`
	Cells    map[string]float64 `json:"cells"`
	Total    float64            `json:"total"`
}

// Pivot is a provider-by-status cross tabulation. Columns lists the status
// categories in lexicographic order; the last row is always the total row.
type Pivot struct {
	Columns     []string   `json:"columns"`
	TotalColumn string     `json:"total_column"`
	Rows        []PivotRow `json:"rows"`
}

// ComplianceRow is the per-provider goal evaluation over system statuses.
// Percentage fields are rounded to two decimals for display; MeetsGoal is
// decided before rounding.
type ComplianceRow struct {
	Provider      string  `json:"provider"`
	Folios        int     `json:"folios"`
	PctAttention  float64 `json:"pct_aten"`
	PctReviewed   float64 `json:"pct_visado"`
	PctAuthorized float64 `json:"pct_auto"`
	PctComposite  float64 `json:"pct_composite"`
	MeetsGoal     bool    `json:"meets_goal"`
}

// ChartPoint is one bar of a chart-ready series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Report is the full render for one filter selection. Empty marks the
// designated no-data state: filters excluded every row, nothing else is
// populated. ComplianceAvailable is false when the uploaded table lacks a
// SYSTEM_STATUS column.
type Report struct {
	Empty               bool             `json:"empty"`
	Filter              FilterSpec       `json:"filter"`
	Summary             *Summary         `json:"summary,omitempty"`
	CountPivot          *Pivot           `json:"count_pivot,omitempty"`
	AmountPivot         *Pivot           `json:"amount_pivot,omitempty"`
	ComplianceAvailable bool             `json:"compliance_available"`
	Compliance          []ComplianceRow  `json:"compliance,omitempty"`
	StatusChart         []ChartPoint     `json:"status_chart,omitempty"`
	ProviderAmountChart []ChartPoint     `json:"provider_amount_chart,omitempty"`
	Detail              []dataset.Record `json:"detail,omitempty"`
}
