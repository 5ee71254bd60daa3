package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/procadmin/internal/infra/lifecycle"
	"github.com/skillcoder/procadmin/internal/infra/shutdown"
)

// State represents the application state
type State string

const (
	// StateInit is the initial state when the application is created
	StateInit State = "init"

	// StateStarting is the state when the application context is initialized but not ready
	StateStarting State = "starting"

	// StateRunning is the state when the application is running normally
	StateRunning State = "running"

	// StateTerminating is the state when the application is shutting down
	StateTerminating State = "terminating"

	// StateTerminated is the final state when the application has terminated
	StateTerminated State = "terminated"
)

const defaultShutdownersCount = 10

// AppState is the process context: it owns the lifecycle state, the
// components to stop on shutdown and the property environment, and raises
// lifecycle events on transitions.
type AppState struct {
	mu                     sync.RWMutex
	logger                 *slog.Logger
	startedAt              time.Time
	readyAt                *time.Time
	terminatingAt          *time.Time
	state                  State
	env                    propertyResolver
	events                 eventPublisher
	embeddedWebApplication bool
	shutdownTimeout        time.Duration
	shutdowners            []shutdown.Shutdowner
	inShutdown             atomic.Bool
	done                   chan struct{}
	shutdownErr            error
}

// Option configures an AppState.
type Option func(*AppState)

// WithEmbeddedWebApplication marks the context as serving an embedded web application.
func WithEmbeddedWebApplication(embedded bool) Option {
	return func(s *AppState) {
		s.embeddedWebApplication = embedded
	}
}

// WithShutdownTimeout bounds the graceful shutdown of registered components.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *AppState) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// New creates a new AppState with the given start time
func New(
	logger *slog.Logger,
	appStart time.Time,
	env propertyResolver,
	events eventPublisher,
	opts ...Option,
) *AppState {
	s := &AppState{
		logger:          logger,
		startedAt:       appStart,
		state:           StateInit,
		env:             env,
		events:          events,
		shutdownTimeout: shutdown.DefaultTimeout,
		shutdowners:     make([]shutdown.Shutdowner, 0, defaultShutdownersCount),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ lifecycle.Context = (*AppState)(nil)

// RegisterShutdowner adds a component stopped on shutdown, in reverse registration order.
func (s *AppState) RegisterShutdowner(shutdowner shutdown.Shutdowner) error {
	if shutdowner == nil {
		return fmt.Errorf("register shutdowner: %w", ErrNilShutdowner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminating || s.state == StateTerminated {
		return fmt.Errorf("register shutdowner: %w", ErrAlreadyTerminated)
	}

	s.shutdowners = append(s.shutdowners, shutdowner)

	return nil
}

// SetStarting transitions the state from Init to Starting and raises
// ContextInitializedEvent.
func (s *AppState) SetStarting(ctx context.Context) error {
	if err := s.transition(StateInit, StateStarting); err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	return s.publish(ctx, lifecycle.NewContextInitializedEvent(s))
}

// SetRunning transitions the state from Starting to Running and raises
// ApplicationReadyEvent.
func (s *AppState) SetRunning(ctx context.Context) error {
	s.mu.Lock()

	if s.state != StateStarting {
		s.mu.Unlock()

		return fmt.Errorf("set running: %w", ErrInvalidStateTransition)
	}

	now := time.Now()
	s.readyAt = &now
	s.state = StateRunning
	s.mu.Unlock()

	return s.publish(ctx, lifecycle.NewApplicationReadyEvent(s))
}

// SetTerminating transitions the state to Terminating
func (s *AppState) SetTerminating(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return fmt.Errorf("set terminating: %w", ErrAlreadyTerminated)
	}

	now := time.Now()
	s.terminatingAt = &now
	s.state = StateTerminating

	return nil
}

func (s *AppState) transition(from, to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return ErrAlreadyTerminated
	}

	if s.state != from {
		return ErrInvalidStateTransition
	}

	s.state = to

	return nil
}

func (s *AppState) publish(ctx context.Context, event lifecycle.Event) error {
	if s.events == nil {
		return nil
	}

	if err := s.events.Multicast(ctx, event); err != nil {
		return fmt.Errorf("publish %T: %w", event, err)
	}

	return nil
}

// GetState returns the current application state
func (s *AppState) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// GetStartTime returns the time when the application started
func (s *AppState) GetStartTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.startedAt
}

// GetUptime returns the duration since the application started
func (s *AppState) GetUptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.startedAt)
}

// IsHealthy returns true while the application has not started terminating
func (s *AppState) IsHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state == StateStarting || s.state == StateRunning
}

// IsReady returns true if the application is ready to serve requests (running and readyAt is set)
func (s *AppState) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state == StateRunning && s.readyAt != nil
}

// IsRunning reports whether the context is active: true from SetStarting
// until Shutdown begins, so it already holds while components start and the
// lifecycle bean is published, before readiness is signalled.
func (s *AppState) IsRunning() bool {
	return s.IsHealthy()
}

// IsEmbeddedWebApplication reports whether the context serves an embedded web application.
func (s *AppState) IsEmbeddedWebApplication() bool {
	return s.embeddedWebApplication
}

// Property resolves key against the property environment.
func (s *AppState) Property(key string) (string, bool, error) {
	if s.env == nil {
		return "", false, nil
	}

	value, found, err := s.env.Resolve(key)
	if err != nil {
		return "", false, fmt.Errorf("property %q: %w", key, err)
	}

	return value, found, nil
}

// Done returns a channel closed once the context has terminated.
func (s *AppState) Done() <-chan struct{} {
	return s.done
}

// Stop gracefully stops the context.
func (s *AppState) Stop(ctx context.Context) error {
	return s.Shutdown(ctx)
}

// Shutdown stops registered components in reverse order, raises
// ContextClosedEvent and moves to the terminated state. Concurrent callers
// wait for the first one and get its result.
func (s *AppState) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.InfoContext(ctx, "application is already shutting down, waiting")

		select {
		case <-s.done:
			return s.shutdownErr
		case <-ctx.Done():
			return fmt.Errorf("wait for shutdown: %w", ctx.Err())
		}
	}

	defer close(s.done)

	if err := s.SetTerminating(ctx); err != nil {
		s.shutdownErr = fmt.Errorf("set terminating application state: %w", err)

		return s.shutdownErr
	}

	s.mu.RLock()
	shutdowners := make([]shutdown.Shutdowner, len(s.shutdowners))
	copy(shutdowners, s.shutdowners)
	s.mu.RUnlock()

	err := shutdown.GracefulShutdown(ctx, s.logger, s.shutdownTimeout, shutdowners)
	if err != nil {
		s.shutdownErr = fmt.Errorf("shutdown: %w", err)
	}

	if pubErr := s.publish(context.WithoutCancel(ctx), lifecycle.NewContextClosedEvent(s)); pubErr != nil {
		s.logger.ErrorContext(ctx, "failed to publish context closed event", "reason", pubErr)
	}

	s.mu.Lock()
	s.state = StateTerminated
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "application terminated", "uptime", s.GetUptime().String())

	return s.shutdownErr
}
