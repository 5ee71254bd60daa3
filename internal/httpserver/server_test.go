package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/procadmin/internal/httpserver"
	"github.com/skillcoder/procadmin/internal/infra/appstate"
	"github.com/skillcoder/procadmin/internal/infra/lifecycle"
	"github.com/skillcoder/procadmin/internal/infra/management"
	"github.com/skillcoder/procadmin/internal/infra/properties"
	"github.com/skillcoder/procadmin/internal/logic/admin"
)

type fixture struct {
	appState  *appstate.AppState
	registrar *admin.Registrar
	registry  *management.Registry
	server    *httpserver.Server
	http      *httptest.Server
}

func newFixture(t *testing.T, opts ...httpserver.Option) *fixture {
	t.Helper()

	logger := slog.Default()
	registry := management.NewRegistry(logger)
	events := lifecycle.NewMulticaster(logger)
	env := properties.NewEnvironment(properties.NewArgsSource([]string{"--foo.bar=blam"}))
	appState := appstate.New(logger, time.Now(), env, events)

	registrar, err := admin.New(logger, admin.DefaultObjectName)
	require.NoError(t, err)
	require.NoError(t, registrar.Bind(appState, registry))
	require.NoError(t, events.AddListener(registrar))

	opts = append([]httpserver.Option{httpserver.WithRateLimit(1000, 1000)}, opts...)
	srv, err := httpserver.New(logger, appState, registrar, registry, opts...)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &fixture{
		appState:  appState,
		registrar: registrar,
		registry:  registry,
		server:    srv,
		http:      ts,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, f.http.URL+path, reader)
	require.NoError(t, err)

	resp, err := f.http.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp.StatusCode, decoded
}

func beanPath(suffix string) string {
	return "/management/beans/" + url.PathEscape(admin.DefaultObjectName) + suffix
}

func TestNew(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.Equal(t, "http-server", f.server.Name())
}

func TestServer_Ping(t *testing.T) {
	t.Parallel()

	t.Run("before ready returns error", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		require.Error(t, f.server.Ping(t.Context()))
	})

	t.Run("after ready returns nil", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, httpserver.WithPort("0"))

		ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
		defer cancel()

		require.NoError(t, f.server.Start(ctx))

		select {
		case <-f.server.Ready():
		case <-time.After(1 * time.Second):
			t.Fatal("server did not become ready")
		}

		require.NoError(t, f.server.Ping(t.Context()))
		require.NotEmpty(t, f.server.Addr())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()

		require.NoError(t, f.server.Shutdown(shutdownCtx))
		require.NoError(t, f.server.Shutdown(shutdownCtx))
	})
}

func TestServer_HealthEndpoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	code, _ := f.do(t, http.MethodGet, "/-/healthz", nil)
	require.Equal(t, http.StatusServiceUnavailable, code)

	require.NoError(t, f.appState.SetStarting(t.Context()))

	code, _ = f.do(t, http.MethodGet, "/-/healthz", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodGet, "/-/readyz", nil)
	require.Equal(t, http.StatusServiceUnavailable, code)

	require.NoError(t, f.appState.SetRunning(t.Context()))

	code, _ = f.do(t, http.MethodGet, "/-/readyz", nil)
	require.Equal(t, http.StatusOK, code)

	code, body := f.do(t, http.MethodGet, "/-/status", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, string(appstate.StateRunning), body["state"])
}

func TestServer_Management(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	code, _ := f.do(t, http.MethodGet, beanPath("/attributes/Ready"), nil)
	require.Equal(t, http.StatusNotFound, code, "not published before the context is initialized")

	require.NoError(t, f.appState.SetStarting(t.Context()))

	code, body := f.do(t, http.MethodGet, beanPath("/attributes/Ready"), nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, body["value"])

	require.NoError(t, f.appState.SetRunning(t.Context()))

	code, body = f.do(t, http.MethodGet, beanPath("/attributes/Ready"), nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["value"])

	code, body = f.do(t, http.MethodGet, beanPath("/attributes/EmbeddedWebApplication"), nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, body["value"])

	code, body = f.do(t, http.MethodGet, "/management/beans?domain=procadmin", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []any{admin.DefaultObjectName}, body["names"])

	code, body = f.do(t, http.MethodGet, "/management/beans?domain=other", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []any{}, body["names"])

	code, body = f.do(t, http.MethodGet, beanPath(""), nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, admin.DefaultObjectName, body["objectName"])
}

func TestServer_Invoke(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		givePath  string
		giveBody  any
		wantCode  int
		wantValue any
	}{
		{
			name:      "property present",
			givePath:  beanPath("/operations/getProperty"),
			giveBody:  map[string]any{"params": []string{"foo.bar"}},
			wantCode:  http.StatusOK,
			wantValue: "blam",
		},
		{
			name:      "property absent is null",
			givePath:  beanPath("/operations/getProperty"),
			giveBody:  map[string]any{"params": []string{"does.not.exist.test"}},
			wantCode:  http.StatusOK,
			wantValue: nil,
		},
		{
			name:      "attribute getter",
			givePath:  beanPath("/operations/isReady"),
			wantCode:  http.StatusOK,
			wantValue: false,
		},
		{
			name:     "wrong arity",
			givePath: beanPath("/operations/getProperty"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown operation",
			givePath: beanPath("/operations/restart"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown bean",
			givePath: "/management/beans/" + url.PathEscape("other:type=Admin") + "/operations/shutdown",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "malformed name",
			givePath: "/management/beans/no-domain/operations/shutdown",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			givePath: beanPath("/operations/getProperty"),
			giveBody: "not an object",
			wantCode: http.StatusBadRequest,
		},
	}

	f := newFixture(t)
	require.NoError(t, f.appState.SetStarting(t.Context()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := f.do(t, http.MethodPost, tt.givePath, tt.giveBody)
			require.Equal(t, tt.wantCode, code)

			if tt.wantCode == http.StatusOK {
				require.Contains(t, body, "value")
				require.Equal(t, tt.wantValue, body["value"])
			} else {
				require.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestServer_ShutdownOperation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.appState.SetStarting(t.Context()))
	require.NoError(t, f.appState.SetRunning(t.Context()))

	code, body := f.do(t, http.MethodPost, beanPath("/operations/shutdown"), nil)
	require.Equal(t, http.StatusAccepted, code)
	require.Equal(t, "accepted", body["status"])

	select {
	case <-f.appState.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not stopped")
	}

	require.False(t, f.appState.IsRunning())
	require.Eventually(t, func() bool {
		return !f.registrar.IsRegistered()
	}, time.Second, 10*time.Millisecond)

	code, _ = f.do(t, http.MethodGet, beanPath("/attributes/Ready"), nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, httpserver.WithRateLimit(0.001, 1))

	code, _ := f.do(t, http.MethodGet, "/management/beans", nil)
	require.Equal(t, http.StatusOK, code)

	code, body := f.do(t, http.MethodGet, "/management/beans", nil)
	require.Equal(t, http.StatusTooManyRequests, code)
	require.NotEmpty(t, body["error"])

	code, _ = f.do(t, http.MethodGet, "/-/status", nil)
	require.Equal(t, http.StatusOK, code, "health routes are not rate limited")
}
