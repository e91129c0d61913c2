// Package export writes the per-driver summary table to disk. Export is an
// optional last step; the pipeline's results are otherwise in-memory only.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/driver-insights/internal/types"
)

// summarySheet is the sheet name used for xlsx exports.
const summarySheet = "Summaries"

var header = []string{"Driver Name", "Location(s)", "Average Rating", "Summary"}

// WriteSummaries writes one row per driver summary to a .csv or .xlsx file,
// chosen by extension.
func WriteSummaries(path string, summaries []types.DriverSummary) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, summaries)
	case ".xlsx":
		return writeExcel(path, summaries)
	default:
		return fmt.Errorf("unsupported export extension for %s (expected .csv or .xlsx)", path)
	}
}

func summaryRow(s types.DriverSummary) []string {
	return []string{s.DriverName, s.Locations, fmt.Sprintf("%.2f", s.AverageRating), s.Summary}
}

func writeCSV(path string, summaries []types.DriverSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, s := range summaries {
		if err := w.Write(summaryRow(s)); err != nil {
			return fmt.Errorf("writing export row for %s: %w", s.DriverName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return f.Close()
}

func writeExcel(path string, summaries []types.DriverSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming export sheet: %w", err)
	}

	rows := [][]string{header}
	for _, s := range summaries {
		rows = append(rows, summaryRow(s))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing export row %d: %w", i+1, err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(summarySheet, cell, &cells); err != nil {
			return fmt.Errorf("writing export row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
