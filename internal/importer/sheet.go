// Package importer implements the spreadsheet ingestion pipeline: it reads
// an uploaded workbook or CSV, validates required columns, canonicalizes
// expiry dates, and produces normalized case records.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds how many rows are read from a legacy .xls workbook.
const maxXLSRows = 100000

// readRows interprets the file content as a tabular sheet and returns its
// rows as strings. Only the first sheet of a multi-sheet workbook is read.
// The format is chosen by file extension: legacy .xls, .csv, and everything
// else through the xlsx reader.
func readRows(data []byte, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("open xls: %w", err)
		}
		// Read sheet 0 directly: ReadAllCells would concatenate every
		// sheet of the workbook into one table.
		sheet := workbook.GetSheet(0)
		if sheet == nil {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
			row := sheet.Row(i)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			// Cells are indexed from column 0 to keep header positions aligned.
			cells := make([]string, 0, row.LastCol())
			for j := 0; j < row.LastCol(); j++ {
				cells = append(cells, row.Col(j))
			}
			rows = append(rows, cells)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	case ".csv":
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}

		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read worksheet: %w", err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}
}

// normalizeHeader canonicalizes a header cell for column matching.
func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// cellValue returns the trimmed cell at idx, or "" when the row is short.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
