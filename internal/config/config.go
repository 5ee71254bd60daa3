package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/skillcoder/procadmin/internal/logic/admin"
)

var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrValueTooSmall = errors.New("value below minimum")
)

type Config struct {
	LogLevel            string
	LogFormat           string
	HTTPPort            string
	MetricsPort         string
	ObjectName          string
	PropertiesFile      string
	WebApplication      bool
	ShutdownTimeout     time.Duration
	RestartSchedule     string
	RestartTZ           string
	RestartJitterMax    time.Duration
	ManagementRateLimit float64
	ManagementRateBurst int
	ActionWorkers       int
}

func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:        getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:       getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:        getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort:     getEnvOrDefault(envKeyMetricsPort, "9090"),
		ObjectName:      getEnvOrDefault(envKeyObjectName, admin.DefaultObjectName),
		PropertiesFile:  os.Getenv(envKeyPropertiesFile),
		RestartSchedule: os.Getenv(envKeyRestartSchedule),
		RestartTZ:       os.Getenv(envKeyRestartTZ),
	}

	var err error

	cfg.WebApplication, err = strconv.ParseBool(getEnvOrDefault(envKeyWebApplication, "false"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, envKeyWebApplication, err)
	}

	cfg.ShutdownTimeout, err = getDuration(envKeyShutdownTimeout, "5s", envMinShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.RestartJitterMax, err = getDuration(envKeyRestartJitterMax, "30s", envMinRestartJitterMax)
	if err != nil {
		return nil, err
	}

	cfg.ManagementRateLimit, err = strconv.ParseFloat(getEnvOrDefault(envKeyManagementRateLimit, "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, envKeyManagementRateLimit, err)
	}

	if cfg.ManagementRateLimit <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", ErrValueTooSmall, envKeyManagementRateLimit)
	}

	cfg.ManagementRateBurst, err = getPositiveInt(envKeyManagementRateBurst, "20")
	if err != nil {
		return nil, err
	}

	cfg.ActionWorkers, err = getPositiveInt(envKeyActionWorkers, "1")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getDuration(key, defaultValue string, minValue time.Duration) (time.Duration, error) {
	value := getEnvOrDefault(key, defaultValue)

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidValue, key, err)
	}

	if d < minValue {
		return 0, fmt.Errorf("%w: %s=%s, min %s", ErrValueTooSmall, key, d, minValue)
	}

	return d, nil
}

func getPositiveInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidValue, key, err)
	}

	if n < 1 {
		return 0, fmt.Errorf("%w: %s=%d, min 1", ErrValueTooSmall, key, n)
	}

	return n, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
