// Package commands defines the stevedore command tree.
package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/config"
	"github.com/stevedore/stevedore/internal/docker"
	"github.com/stevedore/stevedore/internal/logging"
	"github.com/stevedore/stevedore/internal/metrics"
)

var (
	// Global flags
	cfgPath  string
	hostFlag string
	logLevel string
	logFile  string
)

// cfg is resolved in the root PersistentPreRunE: defaults < file < env < flags.
var cfg = config.DefaultConfig()

// newClient builds the lifecycle client; tests swap it for a fake.
var newClient = func(host string) (docker.Client, error) {
	return docker.NewClientForHost(host)
}

var logCleanup = func() {}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	err := rootCmd.ExecuteContext(ctx)
	logCleanup()
	return err
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stevedore",
		Short: "Stevedore - batch container lifecycle management",
		Long: `Stevedore runs lifecycle operations (stop, start, remove) against many
containers or images at once, reporting one deterministic result per target.
Targets already in the desired state count as satisfied, not failed.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "docker daemon host (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")

	rootCmd.AddCommand(newStopCommand())
	rootCmd.AddCommand(newStartCommand())
	rootCmd.AddCommand(newRmCommand())
	rootCmd.AddCommand(newRmiCommand())
	rootCmd.AddCommand(newPruneCommand())
	rootCmd.AddCommand(newPsCommand())
	rootCmd.AddCommand(newImagesCommand())
	rootCmd.AddCommand(newOutdatedCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}

// setup resolves configuration and initializes logging and metrics before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	c := config.DefaultConfig()
	if cfgPath != "" {
		loaded, err := config.LoadConfigFromFile(cfgPath)
		if err != nil {
			return fmt.Errorf("failed loading config: %w", err)
		}
		c = loaded
	}
	if err := config.ApplyEnvOverrides(c); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}

	// Flags have the highest precedence.
	if hostFlag != "" {
		c.DockerHost = hostFlag
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFile != "" {
		c.LogFile = logFile
	}
	cfg = c

	cleanup, err := logging.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logCleanup = cleanup

	for _, warning := range cfg.Validate() {
		logging.Get().Warn().Msg(warning)
	}

	initMetrics()
	return nil
}

// initMetrics starts the optional metrics endpoint.
func initMetrics() {
	if !cfg.MetricsEnabled {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.PromHandler())
		mux.Handle("/status", metrics.JSONHandler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		logging.Get().Info().Str("addr", addr).Msg("starting metrics server")
		_ = http.ListenAndServe(addr, mux)
	}()
}
