// Package dataset loads tabular feedback files into typed records.
//
// Lookup of the well-known columns (userName, Driver Name, User Feedback,
// Location, Rating) is name-based: column order is free, header cells are
// trimmed of surrounding whitespace, and lookup is case-sensitive after the
// trim. Missing or malformed values are not validated here; each field's
// documented default is applied by types.NewFeedbackRecord.
package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/driver-insights/internal/types"
)

// Load reads a .csv, .xlsx or .xlsm file and returns one FeedbackRecord per
// data row. The first row is the header. A file with a header but no data
// rows yields an empty slice. Any read or parse failure returns a *LoadError.
func Load(path string) ([]types.FeedbackRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	default:
		return nil, &LoadError{Path: path, Message: "unsupported file extension (expected .csv, .xlsx or .xlsm)"}
	}
}

func loadCSV(path string) ([]types.FeedbackRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; defaults fill the gaps
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot parse CSV", Cause: err}
	}
	return rowsToRecords(rows), nil
}

func loadExcel(path string) ([]types.FeedbackRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Message: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read rows", Cause: err}
	}
	return rowsToRecords(rows), nil
}

// rowsToRecords maps header-keyed cells to records. Header cells are trimmed;
// ragged data rows simply leave the trailing columns absent.
func rowsToRecords(rows [][]string) []types.FeedbackRecord {
	if len(rows) == 0 {
		return []types.FeedbackRecord{}
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]types.FeedbackRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cells := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" || col >= len(row) {
				continue
			}
			cells[name] = row[col]
		}
		records = append(records, types.NewFeedbackRecord(cells, i))
	}
	return records
}
