// Package errors provides structured, coded errors for retain.
//
// Every error has a registered code that maps to a category, a short
// message and a longer explanation:
//
//   - E1xx: reconciler and state hook faults
//   - E2xx: configuration
//   - E3xx: live transport protocol
//
// # Usage
//
//	err := errors.New("E201").
//	    Wrap(parseErr).
//	    WithSuggestion("Check retain.json for a trailing comma")
//
// Errors compare by code, so errors.Is(err, errors.New("E201")) matches any
// E201 regardless of detail or wrapped cause.
package errors
