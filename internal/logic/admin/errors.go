package admin

import "errors"

var (
	// ErrNotBound is returned when the registrar is used before Bind
	ErrNotBound = errors.New("registrar not bound to a context")

	// ErrAlreadyBound is returned when Bind is called more than once
	ErrAlreadyBound = errors.New("registrar already bound to a context")

	// ErrMalformedIdentity is returned when the registrar identity is not a valid object name
	ErrMalformedIdentity = errors.New("malformed registrar identity")

	// ErrRegistryUnavailable is returned when publishing to or removing from the registry fails
	ErrRegistryUnavailable = errors.New("management registry unavailable")

	// ErrCollaborator wraps failures raised by the bound context or its configuration
	ErrCollaborator = errors.New("context collaborator failure")
)
