package application

import "errors"

var (
	// ErrNotFound indicates the application doesn't exist or belongs to
	// another user. Ownership is part of identity, so foreign records are
	// reported exactly like missing ones.
	ErrNotFound = errors.New("application not found")
	// ErrInvalidInput indicates missing or malformed application fields.
	ErrInvalidInput = errors.New("invalid application input")
	// ErrUnknownStatus indicates a status outside the board's columns.
	ErrUnknownStatus = errors.New("unknown application status")
)
