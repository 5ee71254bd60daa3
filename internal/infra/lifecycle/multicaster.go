package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Listener receives lifecycle events.
type Listener interface {
	Name() string
	OnEvent(ctx context.Context, event Event) error
}

// Multicaster delivers events to listeners synchronously, in registration order.
type Multicaster struct {
	logger    *slog.Logger
	mu        sync.RWMutex
	listeners []Listener
}

// NewMulticaster creates an empty multicaster.
func NewMulticaster(logger *slog.Logger) *Multicaster {
	return &Multicaster{
		logger: logger,
	}
}

// AddListener appends a listener.
func (m *Multicaster) AddListener(listener Listener) error {
	if listener == nil {
		return fmt.Errorf("add listener: %w", ErrNilListener)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, listener)

	return nil
}

// Multicast delivers event to every listener. A failing listener does not stop
// delivery to the others; all failures are joined into the returned error.
func (m *Multicaster) Multicast(ctx context.Context, event Event) error {
	m.mu.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	var errs error

	for _, listener := range listeners {
		err := listener.OnEvent(ctx, event)
		if err != nil {
			m.logger.ErrorContext(ctx, "lifecycle listener failed",
				"listener", listener.Name(),
				"event", fmt.Sprintf("%T", event),
				"reason", err,
			)

			errs = errors.Join(errs, fmt.Errorf("listener %s: %w", listener.Name(), err))

			continue
		}

		m.logger.DebugContext(ctx, "lifecycle event delivered",
			"listener", listener.Name(),
			"event", fmt.Sprintf("%T", event),
		)
	}

	return errs
}
