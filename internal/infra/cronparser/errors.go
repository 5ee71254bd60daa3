package cronparser

import "errors"

var (
	ErrEmptySpec    = errors.New("empty cron spec")
	ErrNoOccurrence = errors.New("cron spec has no next occurrence")
)
