package management

import "errors"

var (
	// ErrMalformedObjectName is returned when an object name does not follow domain:key=value[,key=value]*
	ErrMalformedObjectName = errors.New("malformed object name")

	// ErrInstanceNotFound is returned when no bean is registered under the requested name
	ErrInstanceNotFound = errors.New("instance not found")

	// ErrInstanceAlreadyExists is returned when registering a name that is already taken
	ErrInstanceAlreadyExists = errors.New("instance already exists")

	// ErrAttributeNotFound is returned when the bean has no such attribute
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrOperationNotFound is returned when the bean has no such operation
	ErrOperationNotFound = errors.New("operation not found")

	// ErrInvalidParams is returned when an operation is invoked with the wrong number of parameters
	ErrInvalidParams = errors.New("invalid operation parameters")

	// ErrInvalidBean is returned when registering a nil bean
	ErrInvalidBean = errors.New("invalid bean")
)
