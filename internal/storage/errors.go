package storage

import "errors"

// ErrCorrupt marks a stored value that could not be decoded into the expected
// shape. Callers treat it as absent data.
var ErrCorrupt = errors.New("corrupt stored value")
