package adminclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotRegistered    = errors.New("management bean not registered")
	ErrNotReady         = errors.New("application not ready")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrRejected         = errors.New("request rejected")
	ErrThrottled        = errors.New("request throttled")
	ErrInvalidAddress   = errors.New("invalid address")
)

// StatusError carries the HTTP status and server message of a failed call.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// Unwrap maps the status to a sentinel.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusNotFound:
		return ErrNotRegistered
	case e.Code == http.StatusTooManyRequests:
		return ErrThrottled
	case e.Code >= http.StatusBadRequest && e.Code < http.StatusInternalServerError:
		return ErrRejected
	default:
		return ErrUnexpectedStatus
	}
}
