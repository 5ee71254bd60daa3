package lifecycle

import "errors"

// ErrNilListener is returned when registering a nil listener
var ErrNilListener = errors.New("listener cannot be nil")
