package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/skillcoder/procadmin/internal/infra/lifecycle"
	"github.com/skillcoder/procadmin/internal/infra/management"
	"github.com/skillcoder/procadmin/internal/infra/metrics"
)

// Registrar publishes the lifecycle of one process context as a management
// bean: readiness, the embedded web application flag, property lookup and
// remote shutdown.
//
// State: unbound -> bound (not ready) -> bound (ready) -> shut down.
type Registrar struct {
	logger *slog.Logger
	name   management.ObjectName

	mu       sync.RWMutex
	appCtx   lifecycle.Context
	registry Registry

	embeddedWebApplication atomic.Bool
	ready                  atomic.Bool

	// regMu orders publishing against removal; never held across Stop.
	regMu      sync.Mutex
	registered atomic.Bool

	shutdownMu sync.Mutex
	inShutdown atomic.Bool
}

// New creates a registrar published under identity.
func New(logger *slog.Logger, identity string) (*Registrar, error) {
	name, err := management.ParseObjectName(identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedIdentity, err)
	}

	return &Registrar{
		logger: logger.With("objectName", name.String()),
		name:   name,
	}, nil
}

var _ lifecycle.Listener = (*Registrar)(nil)

// Name returns the listener name.
func (r *Registrar) Name() string {
	return "lifecycle-registrar"
}

// ObjectName returns the identity the registrar is published under.
func (r *Registrar) ObjectName() management.ObjectName {
	return r.name
}

// Bind associates the registrar with its context and the registry it
// publishes into. It must be called exactly once, before any event.
func (r *Registrar) Bind(appCtx lifecycle.Context, registry Registry) error {
	if appCtx == nil || registry == nil {
		return fmt.Errorf("bind: context and registry are required: %w", ErrNotBound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.appCtx != nil {
		return fmt.Errorf("bind: %w", ErrAlreadyBound)
	}

	r.appCtx = appCtx
	r.registry = registry

	if web, ok := appCtx.(webApplicationContext); ok {
		r.embeddedWebApplication.Store(web.IsEmbeddedWebApplication())
	}

	return nil
}

// OnEvent handles lifecycle events. Events raised by any context other than
// the bound one are ignored.
func (r *Registrar) OnEvent(ctx context.Context, event lifecycle.Event) error {
	appCtx, registry, err := r.binding()
	if err != nil {
		return fmt.Errorf("handle %T: %w", event, err)
	}

	if !lifecycle.SameContext(event.Source(), appCtx) {
		r.logger.DebugContext(ctx, "ignoring event from another context", "event", fmt.Sprintf("%T", event))

		return nil
	}

	switch event.(type) {
	case lifecycle.ContextInitializedEvent:
		return r.register(ctx, registry)
	case lifecycle.ApplicationReadyEvent:
		r.markReady(ctx)

		return nil
	case lifecycle.ContextClosedEvent:
		return r.unregister(ctx, registry)
	default:
		return nil
	}
}

// IsReady reports whether the bound context has signalled readiness.
func (r *Registrar) IsReady() bool {
	return r.ready.Load()
}

// IsEmbeddedWebApplication reports whether the bound context serves an
// embedded web application.
func (r *Registrar) IsEmbeddedWebApplication() bool {
	return r.embeddedWebApplication.Load()
}

// IsRegistered reports whether the bean is currently published.
func (r *Registrar) IsRegistered() bool {
	return r.registered.Load()
}

// GetProperty resolves key against the bound context. A missing key yields
// found == false and a nil error.
func (r *Registrar) GetProperty(key string) (string, bool, error) {
	appCtx, _, err := r.binding()
	if err != nil {
		return "", false, fmt.Errorf("get property: %w", err)
	}

	value, found, err := appCtx.Property(key)
	if err != nil {
		return "", false, fmt.Errorf("%w: get property %q: %w", ErrCollaborator, key, err)
	}

	return value, found, nil
}

// Shutdown stops the bound context and removes the bean from the registry.
// Concurrent calls are serialized; calls after the first completed return nil.
func (r *Registrar) Shutdown(ctx context.Context) error {
	appCtx, registry, err := r.binding()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	r.shutdownMu.Lock()
	defer r.shutdownMu.Unlock()

	if !r.inShutdown.CompareAndSwap(false, true) {
		r.logger.InfoContext(ctx, "registrar already shut down, skipping shutdown")

		return nil
	}

	r.logger.InfoContext(ctx, "shutdown requested")

	var errs error

	if err := appCtx.Stop(ctx); err != nil {
		r.logger.ErrorContext(ctx, "failed to stop context", "reason", err)

		errs = fmt.Errorf("%w: stop context: %w", ErrCollaborator, err)
	}

	if err := r.unregister(ctx, registry); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

func (r *Registrar) binding() (lifecycle.Context, Registry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.appCtx == nil {
		return nil, nil, ErrNotBound
	}

	return r.appCtx, r.registry, nil
}

func (r *Registrar) register(ctx context.Context, registry Registry) error {
	r.regMu.Lock()
	defer r.regMu.Unlock()

	if r.inShutdown.Load() {
		r.logger.InfoContext(ctx, "registrar shut down, skipping registration")

		return nil
	}

	if r.registered.Load() {
		return nil
	}

	if _, err := registry.Register(r.name, r.bean()); err != nil {
		return fmt.Errorf("%w: register: %w", ErrRegistryUnavailable, err)
	}

	r.registered.Store(true)
	r.logger.InfoContext(ctx, "registrar published")

	return nil
}

func (r *Registrar) unregister(ctx context.Context, registry Registry) error {
	r.regMu.Lock()
	defer r.regMu.Unlock()

	if !r.registered.Load() {
		return nil
	}

	err := registry.Unregister(r.name)
	if err != nil && !errors.Is(err, management.ErrInstanceNotFound) {
		return fmt.Errorf("%w: unregister: %w", ErrRegistryUnavailable, err)
	}

	r.registered.Store(false)

	if err != nil {
		r.logger.WarnContext(ctx, "registrar was already removed from the registry")

		return nil
	}

	r.logger.InfoContext(ctx, "registrar unpublished")

	return nil
}

func (r *Registrar) markReady(ctx context.Context) {
	if !r.ready.CompareAndSwap(false, true) {
		return
	}

	metrics.SetApplicationReady(true)
	r.logger.InfoContext(ctx, "application ready")
}
