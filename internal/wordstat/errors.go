package wordstat

import "fmt"

// ErrorKind classifies Wordstat API failures.
//
// Design decision: We use a kind enum on a single error type rather than
// separate error types because every failure mode carries the same data
// (an optional API code and a message) and callers only branch on the
// class, not on individual codes.
type ErrorKind int

const (
	// KindAPI indicates the service returned an explicit error envelope.
	// Code and Message carry the service's error_code and error_string.
	KindAPI ErrorKind = iota

	// KindTransport indicates an HTTP-level failure: connection errors,
	// non-success status codes, request construction failures.
	KindTransport

	// KindProtocol indicates the service answered but the response did
	// not have the expected shape (undecodable JSON, missing result
	// field).
	KindProtocol

	// KindTimeout indicates the report did not become ready within the
	// wait budget, or the surrounding context expired mid-poll.
	KindTimeout
)

// String returns a short label for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// APIError is the error type returned by all Client operations.
type APIError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Code is the service's error_code when Kind is KindAPI, empty
	// otherwise.
	Code string

	// Message describes the failure. For KindAPI this is the service's
	// error_string verbatim.
	Message string

	// cause is the wrapped underlying error, if any.
	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wordstat %s error [%s]: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("wordstat %s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is/As chains.
func (e *APIError) Unwrap() error {
	return e.cause
}

// newTransportError wraps an HTTP-level failure.
func newTransportError(msg string, cause error) *APIError {
	return &APIError{Kind: KindTransport, Message: msg, cause: cause}
}

// newProtocolError wraps an unexpected-response failure.
func newProtocolError(msg string, cause error) *APIError {
	return &APIError{Kind: KindProtocol, Message: msg, cause: cause}
}
