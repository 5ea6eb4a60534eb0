// Package model defines the core data structures used throughout keywordstat.
//
// This package contains the following main types:
//   - KeywordRow: One result row (phrase, optional frequency, source, timestamp)
//   - Source: The data source that produced a row (offline or wordstat)
//
// Multiple packages (provider, wordstat, export, bot) need these types, so
// centralizing them prevents import cycles. The models are plain values:
// they are produced fresh per request, never mutated, and discarded after
// the spreadsheet is rendered.
package model
