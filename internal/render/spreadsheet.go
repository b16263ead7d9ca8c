package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Millimetre-to-grid mapping: one sheet row per 5mm of page height,
// one column per 15mm of page width (14 columns across a 210mm page).
const (
	mmPerRow = 5.0
	mmPerCol = 15.0
)

// SpreadsheetRenderer renders documents as xlsx workbooks
type SpreadsheetRenderer struct {
	logger *zap.Logger
}

// NewSpreadsheetRenderer creates a new spreadsheet renderer
func NewSpreadsheetRenderer(logger *zap.Logger) *SpreadsheetRenderer {
	return &SpreadsheetRenderer{logger: logger}
}

// Render implements Renderer
func (r *SpreadsheetRenderer) Render(doc *Document) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	// Tables flow below whatever was drawn last.
	cursor := 1

	for _, op := range doc.Ops {
		var err error
		switch v := op.(type) {
		case Text:
			err = r.drawText(f, sheet, v, &cursor)
		case Rect:
			err = r.drawRect(f, sheet, v, &cursor)
		case Table:
			err = r.drawTable(f, sheet, v, &cursor)
		default:
			err = fmt.Errorf("unsupported draw instruction %T", op)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to render document: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := doc.Filename + ".xlsx"
	r.logger.Info("Document rendered",
		zap.String("filename", filename),
		zap.Int("ops", len(doc.Ops)))

	return buf.Bytes(), filename, nil
}

func (r *SpreadsheetRenderer) drawText(f *excelize.File, sheet string, t Text, cursor *int) error {
	row := int(t.Y/mmPerRow) + 1
	col := int(t.X/mmPerCol) + 1

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, t.Value); err != nil {
		return err
	}

	style := &excelize.Style{
		Font:      &excelize.Font{Bold: t.Bold},
		Alignment: &excelize.Alignment{Horizontal: string(alignOrDefault(t.Align))},
	}
	if t.Size > 0 {
		style.Font.Size = t.Size
	}
	styleID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return err
	}

	if row >= *cursor {
		*cursor = row + 1
	}
	return nil
}

func (r *SpreadsheetRenderer) drawRect(f *excelize.File, sheet string, rect Rect, cursor *int) error {
	startRow := int(rect.Y/mmPerRow) + 1
	startCol := int(rect.X/mmPerCol) + 1
	endRow := int((rect.Y+rect.Height)/mmPerRow) + 1
	endCol := int((rect.X+rect.Width)/mmPerCol) + 1

	start, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		return err
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rect.Fill}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
		return err
	}

	if endRow >= *cursor {
		*cursor = endRow + 1
	}
	return nil
}

func (r *SpreadsheetRenderer) drawTable(f *excelize.File, sheet string, t Table, cursor *int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCDCDC"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    boxBorder(),
	})
	if err != nil {
		return err
	}

	row := *cursor + 1
	for i, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, w := range t.Widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		// Rough mm to character-width conversion.
		if err := f.SetColWidth(sheet, name, name, w/2); err != nil {
			return err
		}
	}

	for ri, dataRow := range t.Rows {
		for ci, value := range dataRow {
			cell, err := excelize.CoordinatesToCellName(ci+1, row+1+ri)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}

			align := AlignLeft
			if ci < len(t.Aligns) {
				align = alignOrDefault(t.Aligns[ci])
			}
			styleID, err := f.NewStyle(&excelize.Style{
				Alignment: &excelize.Alignment{Horizontal: string(align)},
				Border:    boxBorder(),
			})
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return err
			}
		}
	}

	*cursor = row + len(t.Rows) + 1
	return nil
}

func alignOrDefault(a Align) Align {
	if a == "" {
		return AlignLeft
	}
	return a
}

func boxBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}
