// Package parser normalizes free-form user text into an ordered list of
// unique keyword phrases.
//
// Input may mix several delimiter styles: one phrase per line, comma- or
// semicolon-separated phrases, or any combination of the two. The parser
// trims each token, collapses internal whitespace runs to a single space,
// drops empty tokens, and deduplicates case-insensitively while preserving
// the order of first occurrence.
//
// The parser performs no locale-aware normalization beyond Unicode
// whitespace handling: the user's original casing and characters survive
// into the result so they can be exported verbatim.
package parser
