package repository

import "github.com/mlevin/applytrack/internal/repository/errs"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errs.ErrNotFound

	// ErrConflict is returned when the store detects concurrent modification;
	// the operation was rolled back and may be retried
	ErrConflict = errs.ErrConflict

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errs.ErrDuplicate

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errs.ErrInvalidInput
)
