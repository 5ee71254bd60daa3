package config

import "time"

// Env key constants. All configuration env vars use the PROCADMIN_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Log level: debug, info, warn, error.
const envKeyLogLevel = "PROCADMIN_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "PROCADMIN_LOG_FORMAT"

// Port for health, status and management HTTP server.
const envKeyHTTPPort = "PROCADMIN_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "PROCADMIN_METRICS_PORT"

// Identity the registrar is published under (domain:key=value,...).
const envKeyObjectName = "PROCADMIN_OBJECT_NAME"

// Optional TOML or YAML file feeding the property environment.
const envKeyPropertiesFile = "PROCADMIN_PROPERTIES_FILE"

// Whether the process serves an embedded web application.
const envKeyWebApplication = "PROCADMIN_WEB_APPLICATION"

// Upper bound for stopping all components. Units: s, m, h (e.g. 5s).
const (
	envKeyShutdownTimeout = "PROCADMIN_SHUTDOWN_TIMEOUT"
	envMinShutdownTimeout = time.Second
)

// Cron expression for scheduled restarts; empty disables the scheduler.
const envKeyRestartSchedule = "PROCADMIN_RESTART_SCHEDULE"

// Schedule timezone (IANA, e.g. America/New_York).
const envKeyRestartTZ = "PROCADMIN_RESTART_TZ"

// Max jitter added to the scheduled restart time. Units: s, m, h (e.g. 30s).
const (
	envKeyRestartJitterMax = "PROCADMIN_RESTART_JITTER_MAX"
	envMinRestartJitterMax = time.Second
)

// Management requests per second and burst size.
const (
	envKeyManagementRateLimit = "PROCADMIN_MANAGEMENT_RATE_LIMIT"
	envKeyManagementRateBurst = "PROCADMIN_MANAGEMENT_RATE_BURST"
)

// Workers running remote action operations.
const envKeyActionWorkers = "PROCADMIN_ACTION_WORKERS"
