package adminclient_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/procadmin/internal/adapters/outbound/adminclient"
)

const objectName = "procadmin:type=Admin,name=ProcessAdmin"

func newClient(t *testing.T, handler http.Handler) *adminclient.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := adminclient.New(slog.Default(), ts.URL, objectName)
	require.NoError(t, err)

	return c
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    string
		wantErr error
	}{
		{give: "localhost:8080"},
		{give: "http://127.0.0.1:8080"},
		{give: "http://", wantErr: adminclient.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			_, err := adminclient.New(slog.Default(), tt.give, objectName)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestClient_Attributes(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	router.Get("/management/beans/{name}/attributes/Ready", func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(chi.URLParam(r, "name"))
		require.NoError(t, err)
		require.Equal(t, objectName, name)
		jsonHandler(http.StatusOK, `{"value":true}`)(w, r)
	})
	router.Get("/management/beans/{name}/attributes/EmbeddedWebApplication", jsonHandler(http.StatusOK, `{"value":false}`))

	c := newClient(t, router)

	ready, err := c.Ready(t.Context())
	require.NoError(t, err)
	require.True(t, ready)

	embedded, err := c.EmbeddedWebApplication(t.Context())
	require.NoError(t, err)
	require.False(t, embedded)
}

func TestClient_Property(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveBody  string
		wantValue string
		wantFound bool
	}{
		{name: "present", giveBody: `{"value":"blam"}`, wantValue: "blam", wantFound: true},
		{name: "absent", giveBody: `{"value":null}`},
		{name: "empty string", giveBody: `{"value":""}`, wantFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newClient(t, jsonHandler(http.StatusOK, tt.giveBody))

			value, found, err := c.Property(t.Context(), "foo.bar")
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantValue, value)
		})
	}
}

func TestClient_Shutdown(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool

		router := chi.NewRouter()
		router.Post("/management/beans/{name}/operations/shutdown", func(w http.ResponseWriter, r *http.Request) {
			called.Store(true)
			jsonHandler(http.StatusAccepted, `{"status":"accepted"}`)(w, r)
		})

		c := newClient(t, router)

		require.NoError(t, c.Shutdown(t.Context()))
		require.True(t, called.Load())
	})

	t.Run("not registered", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, jsonHandler(http.StatusNotFound, `{"error":"instance not found"}`))

		err := c.Shutdown(t.Context())
		require.ErrorIs(t, err, adminclient.ErrNotRegistered)

		var statusErr *adminclient.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, "instance not found", statusErr.Message)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, jsonHandler(http.StatusInternalServerError, ``))

		require.ErrorIs(t, c.Shutdown(t.Context()), adminclient.ErrUnexpectedStatus)
	})
}

func TestClient_WaitReady(t *testing.T) {
	t.Parallel()

	t.Run("retries until ready", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch calls.Add(1) {
			case 1:
				jsonHandler(http.StatusNotFound, `{"error":"not registered"}`)(w, r)
			case 2:
				jsonHandler(http.StatusOK, `{"value":false}`)(w, r)
			default:
				jsonHandler(http.StatusOK, `{"value":true}`)(w, r)
			}
		}))

		require.NoError(t, c.WaitReady(t.Context(), 5*time.Second))
		require.GreaterOrEqual(t, calls.Load(), int32(3))
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, jsonHandler(http.StatusOK, `{"value":false}`))

		err := c.WaitReady(t.Context(), 300*time.Millisecond)
		require.ErrorIs(t, err, adminclient.ErrNotReady)
	})

	t.Run("bad request is not retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			jsonHandler(http.StatusBadRequest, `{"error":"malformed object name"}`)(w, r)
		}))

		err := c.WaitReady(t.Context(), 5*time.Second)
		require.ErrorIs(t, err, adminclient.ErrRejected)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("context cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		c := newClient(t, jsonHandler(http.StatusOK, `{"value":false}`))

		require.Error(t, c.WaitReady(ctx, 5*time.Second))
	})
}
