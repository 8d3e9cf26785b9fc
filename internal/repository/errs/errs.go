// Package errs holds the repository sentinel errors in a leaf package so
// that domain packages can reference them without importing the repository
// interface package (which imports the domain packages).
package errs

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the store detects concurrent modification;
	// the operation was rolled back and may be retried
	ErrConflict = errors.New("conflict: concurrent modification")

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errors.New("duplicate entity")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
