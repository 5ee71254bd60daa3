package lifecycle

import "context"

// Context is a bounded unit of process lifecycle. Implementations must be
// pointer types: events carry the originating Context and listeners compare
// it by identity.
type Context interface {
	Stop(ctx context.Context) error
	IsRunning() bool
	Property(key string) (string, bool, error)
}

// Event is a lifecycle notification raised by a Context.
type Event interface {
	Source() Context
}

// ContextInitializedEvent is raised once the context has been initialized and
// before it is ready to serve.
type ContextInitializedEvent struct {
	source Context
}

// NewContextInitializedEvent creates a ContextInitializedEvent for source.
func NewContextInitializedEvent(source Context) ContextInitializedEvent {
	return ContextInitializedEvent{source: source}
}

func (e ContextInitializedEvent) Source() Context {
	return e.source
}

// ApplicationReadyEvent is raised when the context has completed startup.
type ApplicationReadyEvent struct {
	source Context
}

// NewApplicationReadyEvent creates an ApplicationReadyEvent for source.
func NewApplicationReadyEvent(source Context) ApplicationReadyEvent {
	return ApplicationReadyEvent{source: source}
}

func (e ApplicationReadyEvent) Source() Context {
	return e.source
}

// ContextClosedEvent is raised after the context stopped, whatever the reason.
type ContextClosedEvent struct {
	source Context
}

// NewContextClosedEvent creates a ContextClosedEvent for source.
func NewContextClosedEvent(source Context) ContextClosedEvent {
	return ContextClosedEvent{source: source}
}

func (e ContextClosedEvent) Source() Context {
	return e.source
}

// SameContext reports whether a and b are the same context instance.
func SameContext(a, b Context) bool {
	if a == nil || b == nil {
		return false
	}

	return a == b
}
