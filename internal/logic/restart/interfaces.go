package restart

import (
	"context"
	"time"

	"github.com/skillcoder/procadmin/internal/infra/management"
)

// ScheduleParser computes restart occurrences.
type ScheduleParser interface {
	Validate(spec, tz string) error
	NextAfter(spec, tz string, after time.Time) (time.Time, error)
}

// Invoker runs a management operation on a published bean.
type Invoker interface {
	Invoke(ctx context.Context, name management.ObjectName, operation string, params []string) (any, error)
}
