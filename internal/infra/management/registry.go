package management

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/skillcoder/procadmin/internal/infra/metrics"
)

// ObjectInstance is returned for a registered bean.
type ObjectInstance struct {
	Name ObjectName
}

// Registry is a process-local table of beans keyed by canonical ObjectName.
// It is safe for concurrent use.
type Registry struct {
	logger *slog.Logger
	beans  cmap.ConcurrentMap[string, *entry]
}

type entry struct {
	name ObjectName
	bean *Bean
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		beans:  cmap.New[*entry](),
	}
}

// Register publishes bean under name.
func (r *Registry) Register(name ObjectName, bean *Bean) (ObjectInstance, error) {
	if name.IsZero() {
		return ObjectInstance{}, fmt.Errorf("register: %w: empty name", ErrMalformedObjectName)
	}

	if bean == nil {
		return ObjectInstance{}, fmt.Errorf("register %s: %w", name, ErrInvalidBean)
	}

	if !r.beans.SetIfAbsent(name.Canonical(), &entry{name: name, bean: bean}) {
		return ObjectInstance{}, fmt.Errorf("register %s: %w", name, ErrInstanceAlreadyExists)
	}

	metrics.SetRegistryBeans(r.beans.Count())
	r.logger.Info("bean registered", "objectName", name.String())

	return ObjectInstance{Name: name}, nil
}

// Unregister removes the bean registered under name.
func (r *Registry) Unregister(name ObjectName) error {
	if _, ok := r.beans.Pop(name.Canonical()); !ok {
		return fmt.Errorf("unregister %s: %w", name, ErrInstanceNotFound)
	}

	metrics.SetRegistryBeans(r.beans.Count())
	r.logger.Info("bean unregistered", "objectName", name.String())

	return nil
}

// IsRegistered reports whether a bean is published under name.
func (r *Registry) IsRegistered(name ObjectName) bool {
	return r.beans.Has(name.Canonical())
}

// GetObjectInstance returns the instance registered under name.
func (r *Registry) GetObjectInstance(name ObjectName) (ObjectInstance, error) {
	e, err := r.lookup(name)
	if err != nil {
		return ObjectInstance{}, fmt.Errorf("get object instance: %w", err)
	}

	return ObjectInstance{Name: e.name}, nil
}

// Names returns the registered names, sorted canonically. An empty domain
// matches every bean.
func (r *Registry) Names(domain string) []ObjectName {
	entries := r.beans.Items()
	names := make([]ObjectName, 0, len(entries))

	for _, e := range entries {
		if domain != "" && e.name.Domain() != domain {
			continue
		}

		names = append(names, e.name)
	}

	sort.Slice(names, func(i, j int) bool {
		return names[i].Canonical() < names[j].Canonical()
	})

	return names
}

// Info describes the bean registered under name.
func (r *Registry) Info(name ObjectName) (BeanInfo, error) {
	e, err := r.lookup(name)
	if err != nil {
		return BeanInfo{}, fmt.Errorf("get bean info: %w", err)
	}

	return e.bean.info(e.name), nil
}

// GetAttribute reads attribute from the bean registered under name.
func (r *Registry) GetAttribute(ctx context.Context, name ObjectName, attribute string) (any, error) {
	e, err := r.lookup(name)
	if err != nil {
		metrics.RecordInvocation(attribute, resultLabel(err))

		return nil, fmt.Errorf("get attribute %s: %w", attribute, err)
	}

	attr, ok := e.bean.attributes[attribute]
	if !ok {
		metrics.RecordInvocation(attribute, resultLabel(ErrAttributeNotFound))

		return nil, fmt.Errorf("get attribute %s of %s: %w", attribute, name, ErrAttributeNotFound)
	}

	value, err := attr.Get(ctx)

	metrics.RecordInvocation(attribute, resultLabel(err))

	if err != nil {
		return nil, fmt.Errorf("get attribute %s of %s: %w", attribute, name, err)
	}

	return value, nil
}

// Invoke runs operation on the bean registered under name.
func (r *Registry) Invoke(ctx context.Context, name ObjectName, operation string, params []string) (any, error) {
	op, err := r.Operation(name, operation)
	if err != nil {
		metrics.RecordInvocation(operation, resultLabel(err))

		return nil, err
	}

	if len(params) != len(op.Params) {
		metrics.RecordInvocation(operation, resultLabel(ErrInvalidParams))

		return nil, fmt.Errorf("invoke %s on %s: %w: want %d, got %d",
			operation, name, ErrInvalidParams, len(op.Params), len(params))
	}

	r.logger.DebugContext(ctx, "invoking operation",
		"objectName", name.String(),
		"operation", operation,
	)

	value, err := op.Invoke(ctx, params)

	metrics.RecordInvocation(operation, resultLabel(err))

	if err != nil {
		return nil, fmt.Errorf("invoke %s on %s: %w", operation, name, err)
	}

	return value, nil
}

// Operation resolves operation on the bean registered under name without
// invoking it.
func (r *Registry) Operation(name ObjectName, operation string) (Operation, error) {
	e, err := r.lookup(name)
	if err != nil {
		return Operation{}, fmt.Errorf("invoke %s: %w", operation, err)
	}

	op, ok := e.bean.operation(operation)
	if !ok {
		return Operation{}, fmt.Errorf("invoke %s on %s: %w", operation, name, ErrOperationNotFound)
	}

	return op, nil
}

func (r *Registry) lookup(name ObjectName) (*entry, error) {
	e, ok := r.beans.Get(name.Canonical())
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrInstanceNotFound)
	}

	return e, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInstanceNotFound):
		return "instance_not_found"
	case errors.Is(err, ErrAttributeNotFound), errors.Is(err, ErrOperationNotFound):
		return "member_not_found"
	case errors.Is(err, ErrInvalidParams):
		return "invalid_params"
	default:
		return "error"
	}
}
