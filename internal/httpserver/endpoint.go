package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
)

// endpoint owns one listening *http.Server: bind, serve, readiness and a
// single graceful stop. Server and MetricsServer embed it.
type endpoint struct {
	logger     *slog.Logger
	kind       string
	server     *http.Server
	addr       atomic.Value
	ready      chan struct{}
	inShutdown atomic.Bool
}

func newEndpoint(logger *slog.Logger, kind string) *endpoint {
	return &endpoint{
		logger: logger.With("server", kind),
		kind:   kind,
		ready:  make(chan struct{}),
	}
}

// listen binds port synchronously, so a taken port fails Start, and serves
// handler in the background.
func (e *endpoint) listen(ctx context.Context, port string, handler http.Handler) error {
	if e.inShutdown.Load() {
		e.logger.InfoContext(ctx, "server is shutting down, skipping start")

		return nil
	}

	addr := ":" + port
	e.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	lc := &net.ListenConfig{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable: true,
		},
	}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s tcp: %w", e.kind, err)
	}

	e.addr.Store(listener.Addr().String())
	e.logger.InfoContext(ctx, "server listening", "addr", listener.Addr().String())

	go func() {
		close(e.ready)

		if err := e.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.ErrorContext(ctx, "server error", "error", err)
		}
	}()

	return nil
}

// stop runs beforeClose, if any, and then drains the server. Only the first
// call does anything.
func (e *endpoint) stop(ctx context.Context, beforeClose func()) error {
	if !e.inShutdown.CompareAndSwap(false, true) {
		e.logger.WarnContext(ctx, "server is already shutting down, skipping shutdown")

		return nil
	}

	e.logger.InfoContext(ctx, "shutting down server")

	if beforeClose != nil {
		beforeClose()
	}

	if e.server == nil {
		return nil
	}

	if err := e.server.Shutdown(ctx); err != nil {
		e.logger.ErrorContext(ctx, "error shutting down server", "error", err)

		return fmt.Errorf("%s shutdown: %w", e.kind, err)
	}

	e.logger.InfoContext(ctx, "server closed properly")

	return nil
}

// Ping returns nil when the server is ready to serve.
func (e *endpoint) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.ready:
		return nil
	default:
		return fmt.Errorf("%s: %w", e.kind, ErrNotListening)
	}
}

// Ready returns a channel closed once the server accepts connections.
func (e *endpoint) Ready() <-chan struct{} {
	return e.ready
}

// Addr returns the bound listen address once started.
func (e *endpoint) Addr() string {
	addr, _ := e.addr.Load().(string)

	return addr
}
