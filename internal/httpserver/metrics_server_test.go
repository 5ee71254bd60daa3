package httpserver_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/procadmin/internal/httpserver"
)

func TestMetricsServer_Handler(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewMetricsServer(slog.Default(), "")
	require.Equal(t, "metrics-server", srv.Name())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tests := []struct {
		name       string
		giveMethod string
		givePath   string
		wantCode   int
	}{
		{name: "scrape", giveMethod: http.MethodGet, givePath: "/metrics", wantCode: http.StatusOK},
		{name: "unknown path", giveMethod: http.MethodGet, givePath: "/", wantCode: http.StatusNotFound},
		{name: "wrong method", giveMethod: http.MethodPost, givePath: "/metrics", wantCode: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequestWithContext(t.Context(), tt.giveMethod, ts.URL+tt.givePath, nil)
			require.NoError(t, err)

			resp, err := ts.Client().Do(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			require.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantCode == http.StatusOK {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				require.Contains(t, string(body), "go_goroutines")
			}
		})
	}
}

func TestMetricsServer_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	metricsServer := httpserver.NewMetricsServer(slog.Default(), "0")

	f := newFixture(t, httpserver.WithComponentChecks(metricsServer))
	require.NoError(t, f.appState.SetStarting(ctx))
	require.NoError(t, f.appState.SetRunning(ctx))

	require.ErrorIs(t, metricsServer.Ping(ctx), httpserver.ErrNotListening)

	code, _ := f.do(t, http.MethodGet, "/-/readyz", nil)
	require.Equal(t, http.StatusServiceUnavailable, code, "readiness waits for the metrics listener")

	require.NoError(t, metricsServer.Start(ctx))

	select {
	case <-metricsServer.Ready():
	case <-time.After(time.Second):
		t.Fatal("metrics server did not become ready")
	}

	require.NoError(t, metricsServer.Ping(ctx))

	code, _ = f.do(t, http.MethodGet, "/-/readyz", nil)
	require.Equal(t, http.StatusOK, code)

	_, port, err := net.SplitHostPort(metricsServer.Addr())
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:"+port+"/metrics", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, metricsServer.Shutdown(shutdownCtx))
	require.NoError(t, metricsServer.Shutdown(shutdownCtx))
	require.NoError(t, metricsServer.Start(ctx), "start after shutdown is a no-op")
}
