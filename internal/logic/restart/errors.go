package restart

import "errors"

var (
	ErrInvalidSchedule = errors.New("invalid restart schedule")
	ErrNotScheduled    = errors.New("restart not scheduled")
)
