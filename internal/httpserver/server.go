package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/heptiolabs/healthcheck"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/skillcoder/procadmin/internal/infra/appstate"
	"github.com/skillcoder/procadmin/internal/infra/shutdown"
)

type Server struct {
	*endpoint

	logger     *slog.Logger
	appState   appstater
	readiness  readinessReporter
	registry   managementRegistry
	procStats  processStatter
	components []pinger
	port       string
	limiter    *rate.Limiter
	workers    int
	actions    *ants.Pool
}

// Option configures a Server.
type Option func(*Server)

// WithPort sets the listen port; "0" picks a free one.
func WithPort(port string) Option {
	return func(s *Server) {
		if port != "" {
			s.port = port
		}
	}
}

// WithRateLimit bounds management requests per second.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		if limit > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(limit), burst)
		}
	}
}

// WithActionWorkers sets how many action operations may run at once.
func WithActionWorkers(workers int) Option {
	return func(s *Server) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithProcessStatter adds process usage to /-/status.
func WithProcessStatter(procStats processStatter) Option {
	return func(s *Server) {
		s.procStats = procStats
	}
}

// WithComponentChecks adds a readiness check per component.
func WithComponentChecks(components ...pinger) Option {
	return func(s *Server) {
		s.components = append(s.components, components...)
	}
}

// New creates a new HTTP server instance
func New(
	logger *slog.Logger,
	appState appstater,
	readiness readinessReporter,
	registry managementRegistry,
	opts ...Option,
) (*Server, error) {
	s := &Server{
		endpoint:  newEndpoint(logger, "http-server"),
		logger:    logger,
		appState:  appState,
		readiness: readiness,
		registry:  registry,
		port:      defaultPort,
		limiter:   rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		workers:   defaultActionWorkers,
	}

	for _, opt := range opts {
		opt(s)
	}

	pool, err := ants.NewPool(s.workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create action pool: %w", err)
	}

	s.actions = pool

	return s, nil
}

var _ shutdown.Shutdowner = (*Server)(nil)

// Name returns the name of the server component
func (s *Server) Name() string {
	return "http-server"
}

// Handler builds the router with health, status and management routes.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	// Add middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("app-state", func() error {
		if !s.appState.IsHealthy() {
			return ErrNotHealthy
		}

		return nil
	})
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))
	health.AddReadinessCheck("application-ready", func() error {
		if !s.readiness.IsReady() {
			return ErrNotReady
		}

		return nil
	})

	for _, c := range s.components {
		health.AddReadinessCheck(c.Name(), func() error {
			ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
			defer cancel()

			return c.Ping(ctx)
		})
	}

	// Register health endpoints
	router.Get("/-/healthz", health.LiveEndpoint)
	router.Get("/-/readyz", health.ReadyEndpoint)
	router.Get("/-/status", appstate.HandleStatus(s.logger, s.appState, s.procStats))

	router.Route("/management", func(r chi.Router) {
		r.Use(rateLimit(s.limiter))
		r.Get("/beans", s.handleListBeans)
		r.Get("/beans/{name}", s.handleGetBean)
		r.Get("/beans/{name}/attributes/{attribute}", s.handleGetAttribute)
		r.Post("/beans/{name}/operations/{operation}", s.handleInvoke)
	})

	return router
}

// Start binds the listen port and serves the router in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	return s.listen(ctx, s.port, s.Handler())
}

// Shutdown gracefully shuts down the HTTP server. Running action operations
// are not awaited: one of them may be the shutdown that called us.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.stop(ctx, s.actions.Release)
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, ErrTooManyRequests)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
