package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/skillcoder/procadmin/internal/config"
	"github.com/skillcoder/procadmin/internal/httpserver"
	"github.com/skillcoder/procadmin/internal/infra/appstate"
	"github.com/skillcoder/procadmin/internal/infra/cronparser"
	"github.com/skillcoder/procadmin/internal/infra/lifecycle"
	"github.com/skillcoder/procadmin/internal/infra/management"
	"github.com/skillcoder/procadmin/internal/infra/properties"
	"github.com/skillcoder/procadmin/internal/infra/shutdown"
	"github.com/skillcoder/procadmin/internal/logic/admin"
	"github.com/skillcoder/procadmin/internal/logic/restart"
)

type App struct {
	logger    *slog.Logger
	appState  appstater
	registrar *admin.Registrar
	registry  *management.Registry
	http      *httpserver.Server
	signals   signalHandler
	servers   []appServer
}

// New creates a new application instance with all dependencies wired.
// args are the command-line arguments without the program name.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appStart time.Time,
	signals <-chan os.Signal,
	args []string,
) (*App, error) {
	env, err := newEnvironment(cfg, args)
	if err != nil {
		return nil, fmt.Errorf("build property environment: %w", err)
	}

	logger.Info("property environment ready", "sources", env.Sources())

	events := lifecycle.NewMulticaster(logger)
	appState := appstate.New(logger, appStart, env, events,
		appstate.WithEmbeddedWebApplication(cfg.WebApplication),
		appstate.WithShutdownTimeout(cfg.ShutdownTimeout),
	)

	registry := management.NewRegistry(logger)

	registrar, err := admin.New(logger, cfg.ObjectName)
	if err != nil {
		return nil, fmt.Errorf("new registrar: %w", err)
	}

	if err := registrar.Bind(appState, registry); err != nil {
		return nil, fmt.Errorf("bind registrar: %w", err)
	}

	if err := events.AddListener(registrar); err != nil {
		return nil, fmt.Errorf("add registrar listener: %w", err)
	}

	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort)

	httpOpts := []httpserver.Option{
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithRateLimit(cfg.ManagementRateLimit, cfg.ManagementRateBurst),
		httpserver.WithActionWorkers(cfg.ActionWorkers),
		httpserver.WithComponentChecks(metricsServer),
	}

	procStats, err := appstate.NewProcessStatter()
	if err != nil {
		logger.Warn("process stats unavailable", "reason", err)
	} else {
		httpOpts = append(httpOpts, httpserver.WithProcessStatter(procStats))
	}

	var scheduler *restart.Service

	if cfg.RestartSchedule != "" {
		scheduler, err = restart.New(
			logger,
			cronparser.New(),
			registry,
			registrar.ObjectName(),
			cfg.RestartSchedule,
			cfg.RestartTZ,
			cfg.RestartJitterMax,
		)
		if err != nil {
			return nil, fmt.Errorf("new restart scheduler: %w", err)
		}

		httpOpts = append(httpOpts, httpserver.WithComponentChecks(scheduler))
	}

	httpServer, err := httpserver.New(logger, appState, registrar, registry, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("new http server: %w", err)
	}

	// Components stop in reverse order: scheduler, http server, metrics server.
	servers := []appServer{metricsServer, httpServer}
	if scheduler != nil {
		servers = append(servers, scheduler)
	}

	return &App{
		logger:    logger,
		appState:  appState,
		registrar: registrar,
		registry:  registry,
		http:      httpServer,
		signals:   shutdown.New(logger, shutdown.SignalSource(signals)),
		servers:   servers,
	}, nil
}

// Run starts all components, publishes the lifecycle and blocks until a
// termination signal, context cancellation or a remote shutdown.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signals.HandleSignals(ctx, cancel)

	readies := make([]<-chan struct{}, 0, len(a.servers))

	for _, server := range a.servers {
		if err := a.appState.RegisterShutdowner(server); err != nil {
			return fmt.Errorf("register shutdowner %s: %w", server.Name(), err)
		}

		if err := server.Start(ctx); err != nil {
			a.logger.ErrorContext(ctx, "failed to start component", "component", server.Name(), "reason", err)

			return errors.Join(
				fmt.Errorf("start %s: %w", server.Name(), err),
				a.appState.Shutdown(context.WithoutCancel(ctx)),
			)
		}

		readies = append(readies, server.Ready())
	}

	select {
	case <-allChannelsClose(ctx, a.logger, readies...):
	case <-ctx.Done():
	}

	if ctx.Err() == nil {
		a.start(ctx)
	}

	select {
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "context done, stopping application")
	case <-a.appState.Done():
		a.logger.InfoContext(ctx, "application stopped")
	}

	if err := a.appState.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// start raises the lifecycle events. A registry failure is logged: the
// process keeps serving without the management bean.
func (a *App) start(ctx context.Context) {
	if err := a.appState.SetStarting(ctx); err != nil {
		a.logger.ErrorContext(ctx, "context initialization listeners failed", "reason", err)
	}

	if err := a.appState.SetRunning(ctx); err != nil {
		a.logger.ErrorContext(ctx, "application ready listeners failed", "reason", err)

		return
	}

	a.logger.InfoContext(ctx, "application running",
		"state", string(a.appState.GetState()),
		"uptime", a.appState.GetUptime().String(),
		"objectName", a.registrar.ObjectName().String(),
	)
}

func newEnvironment(cfg *config.Config, args []string) (*properties.Environment, error) {
	sources := []properties.Source{
		properties.NewArgsSource(args),
		properties.NewEnvSource(),
	}

	if cfg.PropertiesFile != "" {
		file, err := properties.LoadFile(cfg.PropertiesFile)
		if err != nil {
			return nil, fmt.Errorf("load properties file: %w", err)
		}

		sources = append(sources, file)
	}

	sources = append(sources, properties.NewMapSource("defaults", map[string]string{
		"procadmin.object-name":      cfg.ObjectName,
		"procadmin.http.port":        cfg.HTTPPort,
		"procadmin.metrics.port":     cfg.MetricsPort,
		"procadmin.web-application":  strconv.FormatBool(cfg.WebApplication),
		"procadmin.shutdown-timeout": cfg.ShutdownTimeout.String(),
	}))

	return properties.NewEnvironment(sources...), nil
}
