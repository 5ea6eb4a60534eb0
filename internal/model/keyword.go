package model

import "time"

// Source identifies which provider produced a keyword row.
//
// Design decision: We use iota-based constants rather than raw strings so
// that the closed set of sources is visible in one place and comparisons
// are cheap. The String() method provides the value written into reports.
type Source int

const (
	// SourceOffline indicates the row was generated by the deterministic
	// offline provider. Offline rows never involve network I/O and their
	// frequencies are synthetic.
	SourceOffline Source = iota

	// SourceWordstat indicates the row came from the Yandex Wordstat
	// report API, including related phrases from the SearchedAlso
	// expansion list.
	SourceWordstat
)

// String returns the source tag as it appears in exported documents.
func (s Source) String() string {
	switch s {
	case SourceOffline:
		return "offline"
	case SourceWordstat:
		return "wordstat"
	default:
		return "unknown"
	}
}

// KeywordRow is one result row: a normalized phrase with optional
// search-volume data.
//
// Frequency is a pointer because "not requested / not returned" is a
// distinct state from zero: the Wordstat API omits the Shows field for
// some phrases, and the user may decline frequency data entirely. A nil
// Frequency is rendered as a placeholder in exports. When present the
// value is never negative.
type KeywordRow struct {
	// Keyword is the phrase this row describes. Non-empty and
	// whitespace-normalized by the time a row is constructed.
	Keyword string

	// Frequency is the estimated monthly search volume, or nil when
	// frequency data was not requested or not returned by the source.
	Frequency *int

	// Source tags which provider produced this row.
	Source Source

	// CreatedAt is the time the row was produced.
	CreatedAt time.Time
}

// NewKeywordRow creates a row without frequency data.
func NewKeywordRow(keyword string, source Source, createdAt time.Time) KeywordRow {
	return KeywordRow{
		Keyword:   keyword,
		Source:    source,
		CreatedAt: createdAt,
	}
}

// NewKeywordRowWithFrequency creates a row carrying frequency data.
// Negative frequencies are clamped to zero; the Wordstat API never
// returns them, but the invariant holds regardless of the source.
func NewKeywordRowWithFrequency(keyword string, frequency int, source Source, createdAt time.Time) KeywordRow {
	if frequency < 0 {
		frequency = 0
	}
	return KeywordRow{
		Keyword:   keyword,
		Frequency: &frequency,
		Source:    source,
		CreatedAt: createdAt,
	}
}

// HasFrequency reports whether the row carries frequency data.
func (r KeywordRow) HasFrequency() bool {
	return r.Frequency != nil
}
