package properties

import "errors"

var (
	// ErrUnresolvablePlaceholder is returned when a ${key} reference has no value and no default
	ErrUnresolvablePlaceholder = errors.New("unresolvable placeholder")

	// ErrCircularPlaceholder is returned when placeholders reference each other in a cycle
	ErrCircularPlaceholder = errors.New("circular placeholder reference")

	// ErrUnsupportedFormat is returned for properties files that are neither TOML nor YAML
	ErrUnsupportedFormat = errors.New("unsupported properties format")
)
