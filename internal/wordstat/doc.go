// Package wordstat implements the keyword data provider backed by the
// Yandex Wordstat report API.
//
// The API follows an asynchronous job pattern over an RPC-style HTTP
// interface: every call is a POST of {"method": ..., "param": ...} to a
// single endpoint, answered by either a result payload or an error
// envelope. Fetching keyword data is a three-method sequence:
//
//  1. CreateNewWordstatReport(Phrases) returns a numeric report ID.
//  2. GetWordstatReport(ReportID) is polled until the payload appears.
//  3. DeleteWordstatReport(ReportID) releases the server-side report.
//
// The report ID is a server-side resource owned by a single Fetch call:
// once created it is deleted exactly once on every exit path, including
// errors and context cancellation. Deletion failures are logged and
// swallowed; the outcome of the fetch itself takes precedence.
//
// All failures surface as *APIError with a Kind that distinguishes
// transport errors, protocol violations, API error envelopes, and poll
// timeouts.
package wordstat
