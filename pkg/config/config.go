package config

import (
	"os"
	"strconv"
	"time"
)

// BackendConfig points the client at the habit-tracker REST API.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig is the local durable store (token slot, notification dedupe).
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ReminderConfig controls the reminder polling loop.
type ReminderConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// MetricsConfig is the local metrics listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the whole client configuration.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Redis    RedisConfig    `yaml:"redis"`
	Reminder ReminderConfig `yaml:"reminder"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// OverrideBackendFromEnv overrides backend settings from environment variables.
func OverrideBackendFromEnv(cfg *BackendConfig) {
	if url := os.Getenv("BACKEND_BASE_URL"); url != "" {
		cfg.BaseURL = url
	}
	if timeout := os.Getenv("BACKEND_TIMEOUT_SECONDS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			cfg.TimeoutSeconds = t
		}
	}
}

// OverrideRedisFromEnv overrides redis settings from environment variables.
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if d, err := strconv.Atoi(db); err == nil {
			cfg.DB = d
		}
	}
}

// OverrideReminderFromEnv overrides reminder settings from environment variables.
func OverrideReminderFromEnv(cfg *ReminderConfig) {
	if interval := os.Getenv("REMINDER_INTERVAL_SECONDS"); interval != "" {
		if i, err := strconv.Atoi(interval); err == nil {
			cfg.IntervalSeconds = i
		}
	}
}

// OverrideMetricsFromEnv overrides metrics settings from environment variables.
func OverrideMetricsFromEnv(cfg *MetricsConfig) {
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
}

// GetEnv returns an environment variable or a default when unset.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetConfigEnv returns the configuration environment (CONFIG_ENV, default local).
func GetConfigEnv() string {
	return GetEnv("CONFIG_ENV", "local")
}
