package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/procadmin/internal/config"
	"github.com/skillcoder/procadmin/internal/logic/admin"
)

type loadCase struct {
	name    string
	giveEnv map[string]string
	wantErr error
	wantCfg *config.Config
}

func TestLoad(t *testing.T) {
	tests := []loadCase{
		{
			name:    "all defaults",
			giveEnv: map[string]string{},
			wantCfg: &config.Config{
				LogLevel:            "info",
				LogFormat:           "json",
				HTTPPort:            "8080",
				MetricsPort:         "9090",
				ObjectName:          admin.DefaultObjectName,
				ShutdownTimeout:     5 * time.Second,
				RestartJitterMax:    30 * time.Second,
				ManagementRateLimit: 10,
				ManagementRateBurst: 20,
				ActionWorkers:       1,
			},
		},
		{
			name: "overrides",
			giveEnv: map[string]string{
				"PROCADMIN_HTTP_PORT":             "9000",
				"PROCADMIN_OBJECT_NAME":           "app:type=Admin,name=Worker",
				"PROCADMIN_PROPERTIES_FILE":       "/etc/app.toml",
				"PROCADMIN_WEB_APPLICATION":       "true",
				"PROCADMIN_SHUTDOWN_TIMEOUT":      "1m",
				"PROCADMIN_RESTART_SCHEDULE":      "0 4 * * *",
				"PROCADMIN_RESTART_TZ":            "Europe/Berlin",
				"PROCADMIN_MANAGEMENT_RATE_LIMIT": "2.5",
				"PROCADMIN_ACTION_WORKERS":        "3",
			},
			wantCfg: &config.Config{
				LogLevel:            "info",
				LogFormat:           "json",
				HTTPPort:            "9000",
				MetricsPort:         "9090",
				ObjectName:          "app:type=Admin,name=Worker",
				PropertiesFile:      "/etc/app.toml",
				WebApplication:      true,
				ShutdownTimeout:     time.Minute,
				RestartSchedule:     "0 4 * * *",
				RestartTZ:           "Europe/Berlin",
				RestartJitterMax:    30 * time.Second,
				ManagementRateLimit: 2.5,
				ManagementRateBurst: 20,
				ActionWorkers:       3,
			},
		},
		{
			name:    "invalid PROCADMIN_SHUTDOWN_TIMEOUT",
			giveEnv: map[string]string{"PROCADMIN_SHUTDOWN_TIMEOUT": "x"},
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "PROCADMIN_SHUTDOWN_TIMEOUT below minimum",
			giveEnv: map[string]string{"PROCADMIN_SHUTDOWN_TIMEOUT": "100ms"},
			wantErr: config.ErrValueTooSmall,
		},
		{
			name:    "invalid PROCADMIN_RESTART_JITTER_MAX",
			giveEnv: map[string]string{"PROCADMIN_RESTART_JITTER_MAX": "x"},
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "invalid PROCADMIN_WEB_APPLICATION",
			giveEnv: map[string]string{"PROCADMIN_WEB_APPLICATION": "maybe"},
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "zero PROCADMIN_MANAGEMENT_RATE_LIMIT",
			giveEnv: map[string]string{"PROCADMIN_MANAGEMENT_RATE_LIMIT": "0"},
			wantErr: config.ErrValueTooSmall,
		},
		{
			name:    "zero PROCADMIN_ACTION_WORKERS",
			giveEnv: map[string]string{"PROCADMIN_ACTION_WORKERS": "0"},
			wantErr: config.ErrValueTooSmall,
		},
		{
			name:    "invalid PROCADMIN_MANAGEMENT_RATE_BURST",
			giveEnv: map[string]string{"PROCADMIN_MANAGEMENT_RATE_BURST": "many"},
			wantErr: config.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.giveEnv {
				t.Setenv(k, v)
			}

			got, err := config.Load()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantCfg, got)
		})
	}
}
