// Package tabular decodes uploaded spreadsheet and CSV files into
// label-keyed row maps, keeping the original header labels intact so
// downstream column mapping can work on whatever the client sent.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Read decodes the uploaded file into one map per data row, keyed by the
// header labels of the first row. The extension decides the decoder;
// .xlsx reads the first sheet only.
func Read(r io.Reader, filename string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx", ".xls":
		return readSpreadsheet(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tally exports pad rows unevenly

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rowsToMaps(records), nil
}

func readSpreadsheet(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rowsToMaps(rows), nil
}

// rowsToMaps treats the first non-empty row as the header. Cells beyond
// the header width are dropped, missing trailing cells read as empty.
func rowsToMaps(rows [][]string) []map[string]string {
	var headers []string
	var out []map[string]string

	for _, row := range rows {
		if headers == nil {
			if isBlankRow(row) {
				continue
			}
			headers = make([]string, len(row))
			for i, h := range row {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}
		if isBlankRow(row) {
			continue
		}

		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				m[h] = row[i]
			} else {
				m[h] = ""
			}
		}
		out = append(out, m)
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
