package export

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/keywordstat/internal/model"
)

// JSON renders rows as an indented JSON array. Used by the headless fetch
// command for results that feed other tooling.
type JSON struct{}

// NewJSON creates the JSON exporter.
func NewJSON() *JSON {
	return &JSON{}
}

// Extension returns ".json".
func (j *JSON) Extension() string {
	return ".json"
}

// jsonRow is the wire shape of one exported row. Frequency is omitted
// rather than null when the row carries none, so consumers can use key
// presence instead of null checks.
type jsonRow struct {
	Keyword   string `json:"keyword"`
	Frequency *int   `json:"frequency,omitempty"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

// Export renders the rows as indented JSON.
func (j *JSON) Export(rows []model.KeywordRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, jsonRow{
			Keyword:   row.Keyword,
			Frequency: row.Frequency,
			Source:    row.Source.String(),
			CreatedAt: row.CreatedAt.Format(timeFormat),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}
