package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/keywordstat/internal/model"
)

// sheetName is the single worksheet holding the keyword table.
const sheetName = "Keywords"

// Excel renders rows as a single-sheet .xlsx workbook: a header row, one
// row per keyword, and column widths sized to the content.
type Excel struct{}

// NewExcel creates the Excel exporter.
func NewExcel() *Excel {
	return &Excel{}
}

// Extension returns ".xlsx".
func (e *Excel) Extension() string {
	return ".xlsx"
}

// Export builds the workbook in memory and returns its bytes.
func (e *Excel) Export(rows []model.KeywordRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close() //nolint:errcheck // In-memory workbook, nothing to flush
	}()

	// Rename the default sheet rather than adding a second one.
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := writeSheetRow(f, 1, columnHeaders); err != nil {
		return nil, err
	}

	rendered := renderRows(rows)
	for i, cells := range rendered {
		if err := writeSheetRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}

	for i, width := range columnWidths(rendered) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, float64(width)); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build xlsx document: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheetRow writes cells into the 1-based row number.
func writeSheetRow(f *excelize.File, row int, cells []string) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell name: %w", err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
