package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads base.yaml plus an optional per-environment overlay
// (<env>.yaml) from configDir, expands ${VAR} placeholders from the
// process environment, and finally applies the Override*FromEnv hooks.
// Overlay keys win over base keys; environment variables win over both.
func Load(env string, configDir string) (*Config, error) {
	if configDir == "" {
		configDir = "config"
	}

	cfg := &Config{}

	if err := decodeYAMLFile(filepath.Join(configDir, "base.yaml"), cfg); err != nil {
		return nil, fmt.Errorf("failed to load base.yaml: %w", err)
	}

	if env != "" && env != "base" {
		envFile := filepath.Join(configDir, fmt.Sprintf("%s.yaml", env))
		if _, err := os.Stat(envFile); err == nil {
			if err := decodeYAMLFile(envFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load %s.yaml: %w", env, err)
			}
		}
	}

	OverrideBackendFromEnv(&cfg.Backend)
	OverrideRedisFromEnv(&cfg.Redis)
	OverrideReminderFromEnv(&cfg.Reminder)
	OverrideMetricsFromEnv(&cfg.Metrics)

	return cfg, nil
}

// decodeYAMLFile unmarshals path over cfg, so keys absent from the file
// keep their current values.
func decodeYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	return yaml.Unmarshal([]byte(expanded), cfg)
}
