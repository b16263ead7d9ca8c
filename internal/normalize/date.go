// Package normalize converts the heterogeneous date and number encodings
// found in uploaded ledger statements into canonical values. Normalization
// never fails hard: unparseable input degrades to a flagged passthrough.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Spreadsheet serial dates count days from 1899-12-30, which is
	// 25569 days before the Unix epoch.
	serialEpochOffset = 25569

	// Plausible serial-date window: wide enough to exclude voucher
	// numbers below, garbage above (~year 9999).
	serialMin = 10000
	serialMax = 2958465

	msPerDay = 86400 * 1000

	// Skew added to absorb floating-point rounding at day boundaries.
	serialSkewMS = 60 * 1000
)

var monthAbbrev = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Layouts tried by the general-parse fallback.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Date converts a raw cell value to canonical YYYY-MM-DD. The second
// return is false when the value could not be parsed; in that case the
// input is returned unchanged and callers must treat the row as unparsed.
func Date(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw, false
	}

	// Spreadsheet serial date, possibly fractional.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v > serialMin && v < serialMax {
			ms := int64(v*msPerDay) - serialEpochOffset*msPerDay + serialSkewMS
			return time.UnixMilli(ms).UTC().Format("2006-01-02"), true
		}
		// Numeric but outside the window: voucher number or garbage.
		return raw, false
	}

	// DD-Mon-YY or DD-Mon-YYYY with a textual month.
	if parts := strings.Split(s, "-"); len(parts) == 3 {
		if _, err := strconv.Atoi(parts[1]); err != nil {
			if iso, ok := fromDayMonthYear(parts[0], parts[1], parts[2]); ok {
				return iso, true
			}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return raw, false
}

func fromDayMonthYear(day, mon, year string) (string, bool) {
	month, ok := monthAbbrev[strings.ToLower(strings.TrimSpace(mon))]
	if !ok {
		return "", false
	}

	day = strings.TrimSpace(day)
	if len(day) == 1 {
		day = "0" + day
	}
	if _, err := strconv.Atoi(day); err != nil {
		return "", false
	}

	year = strings.TrimSpace(year)
	if len(year) == 2 {
		year = "20" + year
	}
	if _, err := strconv.Atoi(year); err != nil {
		return "", false
	}

	return fmt.Sprintf("%s-%s-%s", year, month, day), true
}

// IsISODate reports whether s has the canonical YYYY-MM-DD shape.
// A non-ISO result from Date means the value went through unparsed.
func IsISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
