package cronparser

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parser computes restart occurrences from five-field cron expressions or
// descriptors such as @daily.
type Parser struct{}

// New creates a new cron parser.
func New() *Parser {
	return &Parser{}
}

// Validate reports whether spec parses in tz.
func (p *Parser) Validate(spec, tz string) error {
	if _, err := p.schedule(spec, tz); err != nil {
		return err
	}

	return nil
}

// NextAfter returns the next cron occurrence strictly after `after`.
// If tz is non-empty and the spec has no CRON_TZ=/TZ= prefix, it prepends CRON_TZ=<tz>.
// Defaults to UTC when no tz is given.
func (p *Parser) NextAfter(
	spec,
	tz string,
	after time.Time,
) (time.Time, error) {
	schedule, err := p.schedule(spec, tz)
	if err != nil {
		return time.Time{}, err
	}

	next := schedule.Next(after)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("cron spec %q: %w", spec, ErrNoOccurrence)
	}

	return next, nil
}

func (p *Parser) schedule(spec, tz string) (cron.Schedule, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, ErrEmptySpec
	}

	schedule, err := _parser.Parse(buildSpec(spec, tz))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return schedule, nil
}

func buildSpec(spec, tz string) string {
	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")

	if hasTZPrefix {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
