package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Returns an error if parsing fails.
//
// Environment variables supported:
// - STEVEDORE_DOCKER_HOST (string, e.g. "tcp://remote:2375")
// - STEVEDORE_STOP_TIMEOUT (duration, e.g. "10s")
// - STEVEDORE_MAX_CONCURRENT (int, 0 = unbounded)
// - STEVEDORE_METRICS_ENABLED (bool)
// - STEVEDORE_METRICS_PORT (int)
// - STEVEDORE_WEBHOOK_URL (string)
// - STEVEDORE_REGISTRY_USER / STEVEDORE_REGISTRY_PASS (string)
// - STEVEDORE_HISTORY_LIMIT (int)
// - STEVEDORE_LOG_LEVEL / STEVEDORE_LOG_FILE (string)
func ApplyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STEVEDORE_DOCKER_HOST"); v != "" {
		cfg.DockerHost = v
	}
	if v := os.Getenv("STEVEDORE_STOP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STEVEDORE_STOP_TIMEOUT: %w", err)
		}
		cfg.StopTimeout = d
	}
	if err := setIntEnv("STEVEDORE_MAX_CONCURRENT", func(n int) { cfg.MaxConcurrent = n }); err != nil {
		return err
	}
	if err := setBoolEnv("STEVEDORE_METRICS_ENABLED", func(b bool) { cfg.MetricsEnabled = b }); err != nil {
		return err
	}
	if err := setIntEnv("STEVEDORE_METRICS_PORT", func(n int) { cfg.MetricsPort = n }); err != nil {
		return err
	}
	if v := os.Getenv("STEVEDORE_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("STEVEDORE_REGISTRY_USER"); v != "" {
		cfg.RegistryUser = v
	}
	if v := os.Getenv("STEVEDORE_REGISTRY_PASS"); v != "" {
		cfg.RegistryPass = v
	}
	if err := setIntEnv("STEVEDORE_HISTORY_LIMIT", func(n int) { cfg.HistoryLimit = n }); err != nil {
		return err
	}
	if v := os.Getenv("STEVEDORE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STEVEDORE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// setBoolEnv is a small helper to parse boolean environment variables
func setBoolEnv(env string, setter func(bool)) error {
	if v := os.Getenv(env); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		setter(b)
	}
	return nil
}

// setIntEnv is a small helper to parse integer environment variables
func setIntEnv(env string, setter func(int)) error {
	if v := os.Getenv(env); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		setter(n)
	}
	return nil
}
