package parser

import (
	"errors"
	"fmt"
)

// Parse errors.
// All of these are user-correctable: the bot surfaces them verbatim and
// keeps the session state so the user can resend a fixed message.
//
// Design decision: We use package-level sentinel errors so callers can use
// errors.Is() for programmatic handling while still getting human-readable
// messages. LimitError additionally carries the counts because the reply
// must tell the user both how many phrases were found and the maximum.
var (
	// ErrEmptyInput is returned when the input text is empty or contains
	// only whitespace.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrNoKeywords is returned when splitting the input yields no
	// non-empty tokens (e.g. text consisting only of delimiters).
	ErrNoKeywords = errors.New("no keywords found in input")
)

// LimitError is returned when the deduplicated keyword count exceeds the
// configured maximum. Use errors.As to retrieve the counts.
type LimitError struct {
	// Got is the number of unique keywords found in the input.
	Got int

	// Limit is the configured maximum.
	Limit int
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("too many keywords: got %d, maximum is %d", e.Got, e.Limit)
}
