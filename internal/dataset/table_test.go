package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilterOptions(t *testing.T) {
	table := &Table{
		Columns: []string{ColProvider, ColUserStatus, ColOrderType, ColCreationDate},
		Rows: []Record{
			{Provider: "BRAVO", UserStatus: "OPEN", OrderType: "CORRECTIVE", CreationDate: date(2025, 3, 1)},
			{Provider: "ACME", UserStatus: "CLOSED", OrderType: "PREVENTIVE", CreationDate: date(2024, 7, 15)},
			{Provider: "ACME", UserStatus: "OPEN", CreationDate: nil},
			{Provider: "", UserStatus: ""},
		},
	}

	opts := table.FilterOptions()

	assert.Equal(t, []string{"ACME", "BRAVO"}, opts.Providers)
	assert.Equal(t, []string{"CLOSED", "OPEN"}, opts.UserStatuses)
	assert.Equal(t, []string{"CORRECTIVE", "PREVENTIVE"}, opts.OrderTypes)
	assert.Equal(t, []int{2025, 2024}, opts.Years, "years descend, most recent first")
	assert.Equal(t, []int{3, 7}, opts.Months)
}

func TestLatestYear(t *testing.T) {
	assert.Equal(t, 0, (&Table{}).LatestYear())

	table := &Table{Rows: []Record{
		{CreationDate: date(2023, 1, 1)},
		{CreationDate: nil},
		{CreationDate: date(2025, 6, 1)},
		{CreationDate: date(2024, 12, 31)},
	}}
	assert.Equal(t, 2025, table.LatestYear())
}

func TestHasColumn(t *testing.T) {
	table := &Table{Columns: []string{ColProvider, ColSystemStatus}}
	assert.True(t, table.HasColumn("system_status"))
	assert.True(t, table.HasColumn("  PROVIDER "))
	assert.False(t, table.HasColumn(ColAmount))
}
