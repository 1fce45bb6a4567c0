// Package errs defines the failure conditions shared by the query engine,
// the storage layer and the HTTP handlers. Every error returned across a
// package boundary wraps exactly one of these sentinels so callers can
// classify it with errors.Is.
package errs

import "errors"

var (
	// ErrEmptyResult means a query or page produced zero items.
	ErrEmptyResult = errors.New("empty result")

	// ErrOutOfRange means a category id is outside the configured range.
	ErrOutOfRange = errors.New("category out of range")

	// ErrInvalidInput means a request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable wraps failures reading from the store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrWriteFailed wraps failures writing to the store.
	ErrWriteFailed = errors.New("write failed")
)
