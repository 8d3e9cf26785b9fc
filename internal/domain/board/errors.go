package board

import "errors"

// ErrIndexOutOfRange indicates a target index outside [0, column length].
var ErrIndexOutOfRange = errors.New("target index out of range")
