package user

import "errors"

var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a failed login. The same error is used
	// for unknown emails and wrong passwords so callers can't probe accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a missing, malformed or expired token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidInput indicates missing signup or login fields.
	ErrInvalidInput = errors.New("email and password are required")
)
