package importer

import (
	"fmt"
	"time"

	"github.com/casetrackhq/casetrack/internal/models"
)

// Column headers recognized in the first row of the sheet.
const (
	colEmployeeName = "employee name"
	colVisaType     = "visa type"
	colExpiryDate   = "expiry date"
	colCurrentStage = "current stage"
	colUSCISCaseID  = "uscis case id"
	colNotes        = "notes"
)

// RowError describes why a single row was rejected during normalization.
type RowError struct {
	// Row is the 1-based row number in the sheet, header included.
	Row int
	// Reason is a short human-readable rejection reason.
	Reason string
}

// Report summarizes the outcome of a normalization run.
type Report struct {
	// Accepted is the number of rows that became case records.
	Accepted int
	// Rejected is the number of rows dropped by validation.
	Rejected int
	// Errors lists the rejected rows and their reasons.
	Errors []RowError
}

// Normalize parses the uploaded file content into case records.
//
// Rows are filtered in order: rows missing Employee Name, Visa Type, or
// Expiry Date are dropped before date parsing; rows whose expiry date fails
// to parse are dropped after. Surviving rows become records stamped with the
// given import time. An unreadable file or a missing required column fails
// the whole import with an error and no partial result.
func Normalize(data []byte, filename string, now time.Time) ([]models.Case, Report, error) {
	rows, err := readRows(data, filename)
	if err != nil {
		return nil, Report{}, err
	}

	columns := map[string]int{}
	for idx, header := range rows[0] {
		columns[normalizeHeader(header)] = idx
	}
	for _, required := range []string{colEmployeeName, colVisaType, colExpiryDate} {
		if _, ok := columns[required]; !ok {
			return nil, Report{}, fmt.Errorf("missing required column %q", required)
		}
	}

	colIdx := func(name string) int {
		if idx, ok := columns[name]; ok {
			return idx
		}
		return -1
	}

	stamped := now.UTC().Format(time.RFC3339)

	var cases []models.Case
	var report Report
	for i, row := range rows[1:] {
		rowNum := i + 2

		name := cellValue(row, colIdx(colEmployeeName))
		visa := cellValue(row, colIdx(colVisaType))
		expiryRaw := cellValue(row, colIdx(colExpiryDate))
		if name == "" || visa == "" || expiryRaw == "" {
			report.Rejected++
			report.Errors = append(report.Errors, RowError{Row: rowNum, Reason: "missing required field"})
			continue
		}

		expiry, ok := parseExpiry(expiryRaw)
		if !ok {
			report.Rejected++
			report.Errors = append(report.Errors, RowError{Row: rowNum, Reason: fmt.Sprintf("unparseable expiry date %q", expiryRaw)})
			continue
		}

		cases = append(cases, models.Case{
			EmployeeName:  name,
			VisaType:      visa,
			ExpiryDate:    expiry,
			CurrentStage:  cellValue(row, colIdx(colCurrentStage)),
			USCISCaseID:   cellValue(row, colIdx(colUSCISCaseID)),
			Notes:         cellValue(row, colIdx(colNotes)),
			LastUpdatedAt: stamped,
		})
		report.Accepted++
	}

	return cases, report, nil
}
