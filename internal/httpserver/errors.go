package httpserver

import "errors"

var (
	ErrNotHealthy      = errors.New("application is not healthy")
	ErrNotReady        = errors.New("application is not ready")
	ErrTooManyRequests = errors.New("too many management requests")
	ErrInvalidBody     = errors.New("invalid request body")
	ErrActionRejected  = errors.New("action operation rejected")
	ErrNotListening    = errors.New("server is not listening")
)
