package app

import (
	"context"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/procadmin/internal/adapters/outbound/adminclient"
	"github.com/skillcoder/procadmin/internal/config"
	"github.com/skillcoder/procadmin/internal/infra/appstate"
	"github.com/skillcoder/procadmin/internal/logic/admin"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:            "debug",
		LogFormat:           "text",
		HTTPPort:            "0",
		MetricsPort:         "0",
		ObjectName:          admin.DefaultObjectName,
		WebApplication:      true,
		ShutdownTimeout:     2 * time.Second,
		RestartJitterMax:    time.Second,
		ManagementRateLimit: 1000,
		ManagementRateBurst: 1000,
		ActionWorkers:       1,
	}
}

func startApp(t *testing.T, cfg *config.Config, args []string) (*App, <-chan error, context.CancelFunc) {
	t.Helper()

	application, err := New(slog.Default(), cfg, time.Now(), make(chan os.Signal), args)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	t.Cleanup(cancel)

	errCh := make(chan error, 1)

	go func() {
		errCh <- application.Run(ctx)
	}()

	require.Eventually(t, application.registrar.IsReady, 5*time.Second, 10*time.Millisecond)

	return application, errCh, cancel
}

func clientFor(t *testing.T, application *App) *adminclient.Client {
	t.Helper()

	_, port, err := net.SplitHostPort(application.http.Addr())
	require.NoError(t, err)

	c, err := adminclient.New(slog.Default(), "127.0.0.1:"+port, admin.DefaultObjectName)
	require.NoError(t, err)

	return c
}

func waitRun(t *testing.T, errCh <-chan error) error {
	t.Helper()

	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")

		return nil
	}
}

func TestApp_RemoteLifecycle(t *testing.T) {
	application, errCh, _ := startApp(t, testConfig(), []string{"--foo.bar=blam"})
	c := clientFor(t, application)
	ctx := t.Context()

	require.NoError(t, c.WaitReady(ctx, 2*time.Second))

	embedded, err := c.EmbeddedWebApplication(ctx)
	require.NoError(t, err)
	require.True(t, embedded)

	value, found, err := c.Property(ctx, "foo.bar")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "blam", value)

	_, found, err = c.Property(ctx, "does.not.exist.test")
	require.NoError(t, err)
	require.False(t, found)

	value, found, err = c.Property(ctx, "procadmin.web-application")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "true", value)

	require.NoError(t, c.Shutdown(ctx))
	require.NoError(t, waitRun(t, errCh))

	require.Equal(t, appstate.StateTerminated, application.appState.GetState())
	require.False(t, application.registry.IsRegistered(application.registrar.ObjectName()))
}

func TestApp_ContextCancel(t *testing.T) {
	application, errCh, cancel := startApp(t, testConfig(), nil)

	require.True(t, application.registry.IsRegistered(application.registrar.ObjectName()))

	cancel()

	require.NoError(t, waitRun(t, errCh))
	require.Equal(t, appstate.StateTerminated, application.appState.GetState())
	require.False(t, application.registry.IsRegistered(application.registrar.ObjectName()))
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveConfig func(*config.Config)
	}{
		{
			name:       "malformed object name",
			giveConfig: func(cfg *config.Config) { cfg.ObjectName = "no-domain" },
		},
		{
			name:       "invalid restart schedule",
			giveConfig: func(cfg *config.Config) { cfg.RestartSchedule = "every day" },
		},
		{
			name:       "missing properties file",
			giveConfig: func(cfg *config.Config) { cfg.PropertiesFile = "/does/not/exist.toml" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tt.giveConfig(cfg)

			_, err := New(slog.Default(), cfg, time.Now(), make(chan os.Signal), nil)
			require.Error(t, err)
		})
	}
}
