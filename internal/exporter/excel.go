// Package exporter writes a rendered dashboard report to an xlsx workbook
// for download.
package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"wodash/internal/report"
)

// Sheet names in the exported workbook.
const (
	SheetOrders     = "Orders"
	SheetAmounts    = "Amounts"
	SheetCompliance = "Compliance"
)

// WriteReport writes the two pivot tables and the compliance table of a
// report into a workbook buffer. An empty report produces a workbook with a
// single explanatory cell.
func WriteReport(rep *report.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if rep.Empty {
		if err := f.SetCellValue("Sheet1", "A1", "No data for current filters"); err != nil {
			return nil, fmt.Errorf("failed to write empty marker: %w", err)
		}
		return f.WriteToBuffer()
	}

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writePivot(f, SheetOrders, rep.CountPivot); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetAmounts); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writePivot(f, SheetAmounts, rep.AmountPivot); err != nil {
		return nil, err
	}

	if rep.ComplianceAvailable {
		if _, err := f.NewSheet(SheetCompliance); err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := writeCompliance(f, rep.Compliance); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writePivot(f *excelize.File, sheet string, pivot *report.Pivot) error {
	header := []interface{}{"PROVIDER"}
	for _, c := range pivot.Columns {
		header = append(header, c)
	}
	header = append(header, pivot.TotalColumn)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}

	for i, row := range pivot.Rows {
		values := make([]interface{}, 0, len(pivot.Columns)+2)
		values = append(values, row.Provider)
		for _, c := range pivot.Columns {
			values = append(values, row.Cells[c])
		}
		values = append(values, row.Total)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row on %s: %w", sheet, err)
		}
	}
	return nil
}

func writeCompliance(f *excelize.File, rows []report.ComplianceRow) error {
	header := []interface{}{"PROVIDER", "FOLIOS", "% ATEN", "% VISADO", "% AUTO", "% VISADO+AUTO", "MEETS GOAL"}
	if err := f.SetSheetRow(SheetCompliance, "A1", &header); err != nil {
		return fmt.Errorf("failed to write compliance header: %w", err)
	}

	for i, row := range rows {
		flag := "FAIL"
		if row.MeetsGoal {
			flag = "PASS"
		}
		values := []interface{}{
			row.Provider, row.Folios,
			row.PctAttention, row.PctReviewed, row.PctAuthorized,
			row.PctComposite, flag,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetCompliance, cell, &values); err != nil {
			return fmt.Errorf("failed to write compliance row: %w", err)
		}
	}
	return nil
}
