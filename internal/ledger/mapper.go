// Package ledger imports client ledger statements uploaded as spreadsheet
// tables with unpredictable column naming, normalizes them and replaces
// the stored dataset.
package ledger

import (
	"sort"
	"strings"
)

// ColumnMapping holds the resolved column label for each semantic field
// of a statement row.
type ColumnMapping struct {
	Date          string
	Particulars   string
	VoucherType   string
	VoucherNumber string
	Debit         string
	Credit        string
	Description   string
}

// candidate phrases per semantic target, matched case-insensitively as
// substrings of the column label. First label that matches wins.
var columnCandidates = map[string][]string{
	"date":        {"date"},
	"particulars": {"particular", "narration"},
	"vchType":     {"vch type", "voucher type", "type"},
	"vchNo":       {"vch no", "voucher no", "vch. no"},
	"debit":       {"debit", "dr amount"},
	"credit":      {"credit", "cr amount"},
	"description": {"description", "memo", "remarks", "notes"},
}

// defaults used when no label matches a target.
var columnDefaults = map[string]string{
	"date":        "Date",
	"particulars": "Particulars",
	"vchType":     "Vch Type",
	"vchNo":       "Vch No.",
	"debit":       "Debit",
	"credit":      "Credit",
	"description": "Description",
}

// MapColumns locates the best-matching column label for every semantic
// target within one row's label set. Labels are scanned in sorted order
// so ties resolve deterministically.
func MapColumns(row map[string]string) ColumnMapping {
	labels := make([]string, 0, len(row))
	for label := range row {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return ColumnMapping{
		Date:          findColumn(labels, "date"),
		Particulars:   findColumn(labels, "particulars"),
		VoucherType:   findColumn(labels, "vchType"),
		VoucherNumber: findColumn(labels, "vchNo"),
		Debit:         findColumn(labels, "debit"),
		Credit:        findColumn(labels, "credit"),
		Description:   findColumn(labels, "description"),
	}
}

func findColumn(labels []string, target string) string {
	for _, phrase := range columnCandidates[target] {
		for _, label := range labels {
			if strings.Contains(strings.ToLower(label), phrase) {
				return label
			}
		}
	}
	return columnDefaults[target]
}

// IsHeaderFooterRow reports whether a particulars value identifies a
// header or footer pseudo-row that must be excluded before storage.
func IsHeaderFooterRow(particulars string) bool {
	p := strings.ToLower(strings.TrimSpace(particulars))
	return p == "particulars" || strings.Contains(p, "total")
}
