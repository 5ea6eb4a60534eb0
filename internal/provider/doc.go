// Package provider defines the keyword data provider capability and its
// offline implementation.
//
// A Provider turns a list of normalized phrases into keyword rows, either
// with or without search-volume data. Exactly two implementations exist:
//
//   - Offline (this package): a deterministic generator that needs no
//     credentials and performs no I/O. Used when no Wordstat OAuth token
//     is configured, and in tests.
//   - The Wordstat API client (package wordstat): the real remote source.
//
// The implementation is selected once at startup based on the available
// configuration; the rest of the program only sees the interface.
package provider
