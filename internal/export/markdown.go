package export

import (
	"bytes"
	"fmt"

	"github.com/nao1215/markdown"

	"github.com/nao1215/keywordstat/internal/model"
)

// Markdown renders rows as a markdown document with a summary line and a
// table. Used by the headless fetch command for results that go into
// documentation or chat messages.
type Markdown struct{}

// NewMarkdown creates the markdown exporter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Extension returns ".md".
func (m *Markdown) Extension() string {
	return ".md"
}

// Export renders the rows as a markdown table.
func (m *Markdown) Export(rows []model.KeywordRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Keyword Report")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("%d keywords.", len(rows)))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: columnHeaders,
		Rows:   renderRows(rows),
	})

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to build markdown document: %w", err)
	}
	return buf.Bytes(), nil
}
