package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stevedore/stevedore/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	if c.StopTimeout != 10*time.Second {
		t.Fatalf("expected default stop timeout of 10s, got %v", c.StopTimeout)
	}
	if c.MaxConcurrent != 0 {
		t.Fatalf("expected unbounded concurrency by default, got %d", c.MaxConcurrent)
	}
	if c.MetricsEnabled {
		t.Fatal("metrics should be opt-in")
	}
	if c.HistoryLimit <= 0 {
		t.Fatalf("expected positive default history limit, got %d", c.HistoryLimit)
	}
}

func TestValidateWarnings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RegistryUser = "bob"
	// missing pass
	if w := cfg.Validate(); len(w) == 0 {
		t.Fatal("expected warning for registry user without pass")
	}

	cfg2 := config.DefaultConfig()
	cfg2.WebhookURL = "ftp://nope"
	if w := cfg2.Validate(); len(w) == 0 {
		t.Fatal("expected warning for non-HTTP webhook URL")
	}

	cfg3 := config.DefaultConfig()
	cfg3.MetricsEnabled = true
	cfg3.MetricsPort = 70000
	if w := cfg3.Validate(); len(w) == 0 {
		t.Fatal("expected warning for out-of-range metrics port")
	}

	if w := config.DefaultConfig().Validate(); len(w) != 0 {
		t.Fatalf("default config should validate cleanly, got %v", w)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stevedore.yaml")
	data := []byte("stop_timeout: 30s\nmax_concurrent: 4\nmetrics_enabled: true\nwebhook_url: https://hooks.example.com/x\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	if cfg.StopTimeout != 30*time.Second {
		t.Errorf("stop_timeout = %v, want 30s", cfg.StopTimeout)
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("max_concurrent = %d, want 4", cfg.MaxConcurrent)
	}
	if !cfg.MetricsEnabled {
		t.Error("metrics_enabled not applied")
	}
	// untouched fields keep their defaults
	if cfg.HistoryLimit != 20 {
		t.Errorf("history_limit should keep default 20, got %d", cfg.HistoryLimit)
	}
}

func TestLoadConfigFromMissingFile(t *testing.T) {
	if _, err := config.LoadConfigFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
