package export

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/keywordstat/internal/model"
)

// Simple renders rows as an aligned plain-text table. This is the default
// output of the headless fetch command when no file format is requested.
type Simple struct{}

// NewSimple creates the plain-text exporter.
func NewSimple() *Simple {
	return &Simple{}
}

// Extension returns ".txt".
func (s *Simple) Extension() string {
	return ".txt"
}

// Export renders the rows as a padded text table.
func (s *Simple) Export(rows []model.KeywordRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	rendered := renderRows(rows)
	widths := columnWidths(rendered)

	var buf bytes.Buffer
	writeTextRow(&buf, columnHeaders, widths)

	var sep []string
	for _, w := range widths {
		sep = append(sep, strings.Repeat("-", w))
	}
	writeTextRow(&buf, sep, widths)

	for _, cells := range rendered {
		writeTextRow(&buf, cells, widths)
	}
	return buf.Bytes(), nil
}

// writeTextRow writes one padded table line. Long cells are truncated to
// the column width so the table stays rectangular.
func writeTextRow(buf *bytes.Buffer, cells []string, widths []int) {
	for i, cell := range cells {
		if utf8.RuneCountInString(cell) > widths[i] {
			cell = string([]rune(cell)[:widths[i]-1]) + "…"
		}
		buf.WriteString(cell)
		if i < len(cells)-1 {
			buf.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
		}
	}
	buf.WriteByte('\n')
}
