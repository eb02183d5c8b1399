// Package config loads and validates stevedore runtime configuration.
// Precedence is defaults < config file < environment < command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for stevedore
type Config struct {
	// DockerHost overrides the daemon endpoint; empty means DOCKER_HOST/default socket.
	DockerHost string `json:"docker_host" yaml:"docker_host"`

	// StopTimeout is how long the daemon waits for a graceful container stop
	// before killing it.
	StopTimeout time.Duration `json:"stop_timeout" yaml:"stop_timeout"`

	// MaxConcurrent bounds how many targets of a batch are processed in
	// parallel. 0 means one goroutine per target (no bound).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// Metrics endpoint (opt-in)
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled"`
	MetricsPort    int  `json:"metrics_port" yaml:"metrics_port"`

	// WebhookURL, when set, receives a JSON notification whenever a batch
	// finishes with failures.
	WebhookURL string `json:"webhook_url" yaml:"webhook_url"`

	// Private registry credentials (used by the outdated tag resolver)
	RegistryUser string `json:"registry_user" yaml:"registry_user"`
	RegistryPass string `json:"registry_pass" yaml:"registry_pass"`

	// HistoryLimit caps how many completed batch summaries are retained.
	HistoryLimit int `json:"history_limit" yaml:"history_limit"`

	LogLevel string `json:"log_level" yaml:"log_level"`
	LogFile  string `json:"log_file" yaml:"log_file"`
}

// DefaultConfig returns a sane default configuration
func DefaultConfig() *Config {
	return &Config{
		StopTimeout: 10 * time.Second,

		// one goroutine per target by default
		MaxConcurrent: 0,

		MetricsEnabled: false,
		MetricsPort:    9090,

		HistoryLimit: 20,

		LogLevel: "info",
	}
}

// Validate returns a list of non-fatal configuration warnings.
func (c *Config) Validate() []string {
	var warnings []string
	checks := []struct {
		cond bool
		msg  string
	}{
		{c.StopTimeout < 0, "stop_timeout is negative; the daemon default will be used"},
		{c.MaxConcurrent < 0, "max_concurrent is negative; treating as unbounded"},
		{c.MetricsEnabled && (c.MetricsPort < 1 || c.MetricsPort > 65535), fmt.Sprintf("metrics_port %d is out of range", c.MetricsPort)},
		{c.WebhookURL != "" && !strings.HasPrefix(c.WebhookURL, "http://") && !strings.HasPrefix(c.WebhookURL, "https://"), "webhook_url does not look like an HTTP(S) URL"},
		{c.RegistryUser != "" && c.RegistryPass == "", "registry_user provided but registry_pass is missing"},
		{c.RegistryPass != "" && c.RegistryUser == "", "registry_pass provided but registry_user is missing"},
		{c.HistoryLimit < 0, "history_limit is negative; history recording disabled"},
	}
	for _, ch := range checks {
		if ch.cond {
			warnings = append(warnings, ch.msg)
		}
	}
	return warnings
}

// LoadConfigFromFile loads config from a YAML (or JSON) file on top of defaults
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
