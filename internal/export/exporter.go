package export

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/nao1215/keywordstat/internal/model"
)

// ErrNoRows is returned when an exporter is asked to render an empty row
// list. An empty document would look like a silent failure to the user, so
// the caller must handle this case explicitly.
var ErrNoRows = errors.New("no rows to export")

// Rendering constants shared by all formats.
const (
	// frequencyPlaceholder is shown when a row carries no frequency data.
	frequencyPlaceholder = "—"

	// timeFormat is the layout for the Created At column.
	timeFormat = "2006-01-02 15:04:05"

	// maxColumnWidth caps the display width of a column so one outlier
	// value cannot stretch the whole document.
	maxColumnWidth = 50

	// columnMargin is added to the longest value of a column.
	columnMargin = 2
)

// columnHeaders are the table headers, in column order.
var columnHeaders = []string{"Keyword", "Frequency", "Source", "Created At"}

// Exporter renders keyword rows into a document.
type Exporter interface {
	// Export renders the rows, preserving their order. It returns
	// ErrNoRows when rows is empty and wraps any construction failure.
	Export(rows []model.KeywordRow) ([]byte, error)

	// Extension returns the file extension for this format, including
	// the leading dot (e.g. ".xlsx").
	Extension() string
}

// renderRow maps one keyword row to its four rendered cells.
func renderRow(row model.KeywordRow) []string {
	frequency := frequencyPlaceholder
	if row.HasFrequency() {
		frequency = strconv.Itoa(*row.Frequency)
	}
	return []string{
		row.Keyword,
		frequency,
		row.Source.String(),
		row.CreatedAt.Format(timeFormat),
	}
}

// columnWidths computes per-column display widths: the longest rendered
// value (header included) plus a margin, capped at maxColumnWidth. Widths
// count runes, not bytes, so Cyrillic phrases size correctly.
func columnWidths(rendered [][]string) []int {
	widths := make([]int, len(columnHeaders))
	for i, h := range columnHeaders {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, cells := range rendered {
		for i, cell := range cells {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		widths[i] += columnMargin
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// renderRows maps every row through renderRow, preserving order.
func renderRows(rows []model.KeywordRow) [][]string {
	rendered := make([][]string, 0, len(rows))
	for _, row := range rows {
		rendered = append(rendered, renderRow(row))
	}
	return rendered
}
