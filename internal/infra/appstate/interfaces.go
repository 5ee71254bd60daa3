package appstate

import (
	"context"
	"time"

	"github.com/skillcoder/procadmin/internal/infra/lifecycle"
)

// propertyResolver is the configuration collaborator
type propertyResolver interface {
	Resolve(key string) (string, bool, error)
}

// eventPublisher delivers lifecycle events to listeners
type eventPublisher interface {
	Multicast(ctx context.Context, event lifecycle.Event) error
}

// statusGetter is an internal interface for getting the application status
type statusGetter interface {
	GetState() State
	GetUptime() time.Duration
	GetStartTime() time.Time
}

// processStatter reports resource usage of the current process
type processStatter interface {
	Stats(ctx context.Context) (ProcessStats, error)
}
