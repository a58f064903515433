package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodash/internal/dataset"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func amount(v float64) *float64 { return &v }

// sampleTable is the three-row scenario used across the aggregation tests.
func sampleTable() *dataset.Table {
	return &dataset.Table{
		Columns: []string{dataset.ColProvider, dataset.ColUserStatus, dataset.ColAmount, dataset.ColCreationDate},
		Rows: []dataset.Record{
			{OrderID: "1", Provider: "A", UserStatus: "OPEN", Amount: amount(100), CreationDate: date(2025, 3, 1)},
			{OrderID: "2", Provider: "A", UserStatus: "CLOSED", Amount: amount(200), CreationDate: date(2025, 3, 2)},
			{OrderID: "3", Provider: "B", UserStatus: "OPEN", Amount: amount(50), CreationDate: date(2025, 3, 3)},
		},
	}
}

func TestApplyFilter_PreservesOrderAsSubsequence(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Record{
		{OrderID: "1", Provider: "A", CreationDate: date(2025, 1, 1)},
		{OrderID: "2", Provider: "B", CreationDate: date(2025, 2, 1)},
		{OrderID: "3", Provider: "A", CreationDate: date(2025, 3, 1)},
		{OrderID: "4", Provider: "C", CreationDate: date(2025, 4, 1)},
	}}

	got := ApplyFilter(table, FilterSpec{Year: 2025, Providers: []string{"A", "C"}})
	require.Len(t, got.Rows, 3)
	assert.Equal(t, "1", got.Rows[0].OrderID)
	assert.Equal(t, "3", got.Rows[1].OrderID)
	assert.Equal(t, "4", got.Rows[2].OrderID)
}

func TestApplyFilter_Idempotent(t *testing.T) {
	spec := FilterSpec{Year: 2025, Months: []int{3}, Providers: []string{"A"}}
	once := ApplyFilter(sampleTable(), spec)
	twice := ApplyFilter(once, spec)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestApplyFilter_DropsNilDates(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Record{
		{OrderID: "1", CreationDate: date(2025, 3, 1)},
		{OrderID: "2", CreationDate: nil},
	}}

	got := ApplyFilter(table, FilterSpec{Year: 2025})
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1", got.Rows[0].OrderID)
}

func TestApplyFilter_YearAndMonths(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Record{
		{OrderID: "1", CreationDate: date(2025, 3, 1)},
		{OrderID: "2", CreationDate: date(2025, 4, 1)},
		{OrderID: "3", CreationDate: date(2024, 3, 1)},
	}}

	got := ApplyFilter(table, FilterSpec{Year: 2025, Months: []int{3}})
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1", got.Rows[0].OrderID)
}

func TestApplyFilter_DefaultPolicy(t *testing.T) {
	// Year 0 resolves to the latest year in the data; empty months mean
	// all twelve. No wall clock involved.
	table := &dataset.Table{Rows: []dataset.Record{
		{OrderID: "1", CreationDate: date(2024, 6, 1)},
		{OrderID: "2", CreationDate: date(2025, 1, 1)},
		{OrderID: "3", CreationDate: date(2025, 11, 30)},
	}}

	got := ApplyFilter(table, FilterSpec{})
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "2", got.Rows[0].OrderID)
	assert.Equal(t, "3", got.Rows[1].OrderID)
}

func TestApplyFilter_ConjunctiveAcrossDimensions(t *testing.T) {
	table := sampleTable()
	got := ApplyFilter(table, FilterSpec{
		Year:         2025,
		Months:       []int{3},
		Providers:    []string{"A"},
		UserStatuses: []string{"OPEN"},
	})
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1", got.Rows[0].OrderID)
}

func TestApplyFilter_OrderTypeSelection(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Record{
		{OrderID: "1", OrderType: "CORRECTIVE", CreationDate: date(2025, 3, 1)},
		{OrderID: "2", OrderType: "PREVENTIVE", CreationDate: date(2025, 3, 2)},
	}}

	got := ApplyFilter(table, FilterSpec{OrderTypes: []string{"CORRECTIVE"}, Year: 2025})
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1", got.Rows[0].OrderID)
}

func TestApplyFilter_EmptyResultIsValid(t *testing.T) {
	got := ApplyFilter(sampleTable(), FilterSpec{Year: 1999})
	assert.Empty(t, got.Rows)
	assert.Equal(t, sampleTable().Columns, got.Columns, "column set unchanged")
}
