package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrLoad marks uploaded bytes that could not be read as a work-order table:
// not a well-formed workbook, no header row, or a required column missing.
// Malformed cell values never produce ErrLoad.
var ErrLoad = errors.New("invalid workbook")

// requiredColumns must be present after header normalization. The pivot
// dimensions cannot degrade to empty values the way the optional columns do.
var requiredColumns = []string{ColProvider, ColUserStatus}

// dateLayouts are tried in order when a creation-date cell is not an Excel
// serial number.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"02/01/2006",
	"02-Jan-06",
	time.RFC3339,
}

// Load reads the first sheet of an xlsx workbook into a Table. Header cells
// are normalized before lookup; CREATION_DATE and AMOUNT cells that fail
// coercion become nil on the record.
func Load(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrLoad)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header row", ErrLoad, sheets[0])
	}

	columns, index := normalizeHeader(rows[0])
	for _, required := range requiredColumns {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: required column %s is missing", ErrLoad, required)
		}
	}

	table := &Table{Columns: columns}
	for _, raw := range rows[1:] {
		if blankRow(raw) {
			continue
		}
		table.Rows = append(table.Rows, buildRecord(raw, columns, index))
	}

	slog.Debug("workbook loaded",
		slog.String("sheet", sheets[0]),
		slog.Int("columns", len(columns)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// normalizeHeader maps each normalized column name to its cell position.
// The first occurrence wins when a sheet repeats a header.
func normalizeHeader(header []string) ([]string, map[string]int) {
	columns := make([]string, 0, len(header))
	index := make(map[string]int, len(header))
	for i, cell := range header {
		name := NormalizeColumn(cell)
		if name == "" {
			continue
		}
		if _, seen := index[name]; seen {
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}
	return columns, index
}

func buildRecord(raw []string, columns []string, index map[string]int) Record {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[i])
	}

	rec := Record{
		OrderID:      cell(ColOrderID),
		OrderType:    cell(ColOrderType),
		CreationDate: parseDate(cell(ColCreationDate)),
		Amount:       parseAmount(cell(ColAmount)),
		Provider:     cell(ColProvider),
		UserStatus:   cell(ColUserStatus),
		SystemStatus: cell(ColSystemStatus),
	}

	for _, name := range columns {
		switch name {
		case ColOrderID, ColOrderType, ColCreationDate, ColAmount,
			ColProvider, ColUserStatus, ColSystemStatus:
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[name] = cell(name)
	}
	return rec
}

// parseDate coerces a creation-date cell. Excelize returns formatted cell
// text, so both rendered dates and raw serial numbers show up here.
// Unparseable values become nil, never an error.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}
	return nil
}

// parseAmount coerces an amount cell, tolerating currency symbols and
// thousand separators. Unparseable values become nil.
func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

func blankRow(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
