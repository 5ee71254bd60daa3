package restart

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/procadmin/internal/infra/management"
	"github.com/skillcoder/procadmin/internal/infra/metrics"
	"github.com/skillcoder/procadmin/internal/logic/admin"
)

// Service restarts the process on a cron schedule by invoking the shutdown
// operation of the published registrar. The orchestrator is expected to bring
// the process back.
type Service struct {
	logger    *slog.Logger
	parser    ScheduleParser
	invoker   Invoker
	target    management.ObjectName
	spec      string
	tz        string
	jitterMax time.Duration

	ready      chan struct{}
	doneCh     chan struct{}
	started    atomic.Bool
	inShutdown atomic.Bool

	mu     sync.RWMutex
	cancel context.CancelFunc
	nextAt time.Time
}

// New creates a restart scheduler for target. The spec is validated up front.
func New(
	logger *slog.Logger,
	parser ScheduleParser,
	invoker Invoker,
	target management.ObjectName,
	spec,
	tz string,
	jitterMax time.Duration,
) (*Service, error) {
	if err := parser.Validate(spec, tz); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	return &Service{
		logger:    logger.With("component", "restart-scheduler", "schedule", spec, "tz", tz),
		parser:    parser,
		invoker:   invoker,
		target:    target,
		spec:      spec,
		tz:        tz,
		jitterMax: jitterMax,
		ready:     make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Name returns the name of the scheduler component
func (s *Service) Name() string {
	return "restart-scheduler"
}

// Start arms the timer for the next occurrence.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "restart scheduler is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(loopCtx)

	return nil
}

// Ready returns a channel closed once the scheduler is armed.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		if s.NextAt().IsZero() {
			return ErrNotScheduled
		}

		return nil
	default:
		return fmt.Errorf("restart scheduler is not ready")
	}
}

// NextAt returns the armed restart time including jitter, zero when none.
func (s *Service) NextAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nextAt
}

// Shutdown disarms the timer and waits for the scheduler loop to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "restart scheduler is already shutting down, skipping shutdown")

		return nil
	}

	if !s.started.Load() {
		return nil
	}

	s.mu.RLock()
	cancel := s.cancel
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before scheduler loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "restart scheduler loop exited")
	}

	return nil
}

func (s *Service) run(ctx context.Context) {
	due := false

	// The trigger runs after doneCh is closed: it stops the process context,
	// whose shutdown waits for this scheduler.
	defer func() {
		close(s.doneCh)

		if due {
			s.trigger(context.WithoutCancel(ctx))
		}
	}()

	at, err := s.arm(time.Now())

	close(s.ready)

	if err != nil {
		s.logger.ErrorContext(ctx, "failed to arm restart", "reason", err)

		return
	}

	s.logger.InfoContext(ctx, "restart scheduled", "at", at)

	timer := time.NewTimer(time.Until(at))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "terminating restart scheduler loop")
	case <-timer.C:
		due = true
	}
}

func (s *Service) arm(now time.Time) (time.Time, error) {
	next, err := s.parser.NextAfter(s.spec, s.tz, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("next occurrence: %w", err)
	}

	at := next.Add(jitter(s.jitterMax))

	s.mu.Lock()
	s.nextAt = at
	s.mu.Unlock()

	metrics.SetRestartScheduled(at)

	return at, nil
}

func (s *Service) trigger(ctx context.Context) {
	s.logger.InfoContext(ctx, "scheduled restart due, shutting down", "target", s.target.String())

	if _, err := s.invoker.Invoke(ctx, s.target, admin.OperationShutdown, nil); err != nil {
		s.logger.ErrorContext(ctx, "scheduled restart failed", "reason", err)
	}
}

func jitter(maxJitter time.Duration) time.Duration {
	if maxJitter <= 0 {
		return 0
	}

	return rand.N(maxJitter)
}
