package importer

import (
	"strconv"
	"time"
)

// excelEpoch is the day-zero anchor of legacy spreadsheet serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// strictFormats are tried in order against string expiry values; the first
// strict match wins. The order is part of the import contract: an ambiguous
// value like "01/02/2024" is always month/day, never day/month.
var strictFormats = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2006-01-02",
	"01/02/2006",
}

// lenientFormats are the best-effort fallback when no strict format matches.
var lenientFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"1/2/2006",
}

// maxDateSerial is 9999-12-31 in the 1899-12-30 epoch, the last date the
// canonical YYYY-MM-DD form can carry.
const maxDateSerial = 2958465

// serialToDate converts a spreadsheet day-count serial into a calendar date,
// anchored at 1899-12-30 UTC and truncated to the day. Serials outside the
// representable window are invalid: converting them through a nanosecond
// duration would overflow and wrap to a garbage date.
func serialToDate(serial float64) (string, bool) {
	if serial < 0 || serial > maxDateSerial {
		return "", false
	}
	days := int(serial)
	frac := serial - float64(days)
	t := excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * float64(24*time.Hour)))
	return t.UTC().Format("2006-01-02"), true
}

// parseExpiry converts a raw expiry cell into a canonical YYYY-MM-DD date.
// Precedence: numeric serial first, then the strict format list, then the
// lenient fallback list. Returns false when nothing parses.
func parseExpiry(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	// Numeric values are always treated as serials; an out-of-range serial
	// drops the row rather than falling through to the string formats.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return serialToDate(serial)
	}

	for _, format := range strictFormats {
		if parsed, err := time.Parse(format, raw); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}

	for _, format := range lenientFormats {
		if parsed, err := time.Parse(format, raw); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}

	return "", false
}
