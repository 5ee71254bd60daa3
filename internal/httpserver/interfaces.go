package httpserver

import (
	"context"
	"time"

	"github.com/skillcoder/procadmin/internal/infra/appstate"
	"github.com/skillcoder/procadmin/internal/infra/management"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
}

// readinessReporter reports whether the published application completed startup
type readinessReporter interface {
	IsReady() bool
}

// managementRegistry is the registry the management endpoints read and invoke
type managementRegistry interface {
	Names(domain string) []management.ObjectName
	Info(name management.ObjectName) (management.BeanInfo, error)
	GetAttribute(ctx context.Context, name management.ObjectName, attribute string) (any, error)
	Operation(name management.ObjectName, operation string) (management.Operation, error)
	Invoke(ctx context.Context, name management.ObjectName, operation string, params []string) (any, error)
}

// processStatter reports resource usage of the current process
type processStatter interface {
	Stats(ctx context.Context) (appstate.ProcessStats, error)
}

// pinger is a component that can report its own readiness
type pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
