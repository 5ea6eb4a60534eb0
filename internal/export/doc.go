// Package export serializes keyword rows into shareable documents.
//
// Implementations write the same four-column table (keyword, frequency,
// source, creation time) in different formats:
//   - Excel: a single-sheet .xlsx workbook (the bot's output)
//   - Markdown: a markdown table for the headless fetch command
//   - JSON: an indented array for machine consumers
//   - Simple: an aligned plain-text table for terminal output
//
// We use an interface so the bot and the CLI can pick a format without
// caring how it is rendered; the row-to-cell mapping is shared so every
// format shows identical values.
package export
