package config_test

import (
	"testing"
	"time"

	"github.com/stevedore/stevedore/internal/config"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("STEVEDORE_STOP_TIMEOUT", "25s")
	t.Setenv("STEVEDORE_MAX_CONCURRENT", "8")
	t.Setenv("STEVEDORE_METRICS_ENABLED", "true")
	t.Setenv("STEVEDORE_WEBHOOK_URL", "https://hooks.example.com/batch")
	t.Setenv("STEVEDORE_LOG_LEVEL", "debug")

	cfg := config.DefaultConfig()
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides failed: %v", err)
	}
	if cfg.StopTimeout != 25*time.Second {
		t.Errorf("StopTimeout = %v, want 25s", cfg.StopTimeout)
	}
	if cfg.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent = %d, want 8", cfg.MaxConcurrent)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled not applied")
	}
	if cfg.WebhookURL != "https://hooks.example.com/batch" {
		t.Errorf("WebhookURL = %q", cfg.WebhookURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestApplyEnvOverridesInvalidDuration(t *testing.T) {
	t.Setenv("STEVEDORE_STOP_TIMEOUT", "not-a-duration")
	cfg := config.DefaultConfig()
	if err := config.ApplyEnvOverrides(cfg); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestApplyEnvOverridesInvalidInt(t *testing.T) {
	t.Setenv("STEVEDORE_MAX_CONCURRENT", "many")
	cfg := config.DefaultConfig()
	if err := config.ApplyEnvOverrides(cfg); err == nil {
		t.Fatal("expected error for invalid integer")
	}
}

func TestApplyEnvOverridesEmptyEnvKeepsDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	want := *cfg
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides failed: %v", err)
	}
	if *cfg != want {
		t.Fatalf("config changed without env vars set: %+v", cfg)
	}
}
