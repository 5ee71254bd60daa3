package app

import (
	"context"
	"time"

	"github.com/skillcoder/procadmin/internal/infra/appstate"
	"github.com/skillcoder/procadmin/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterShutdowner(shutdowner shutdown.Shutdowner) error
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	GetState() appstate.State
	GetUptime() time.Duration
	Done() <-chan struct{}
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
}

type appServer interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	Ping(ctx context.Context) error
	shutdown.Shutdowner
}
