// Package commands implements the rdmsim command-line tree: a cobra root
// command plus subcommands for running, inspecting, and manually probing a
// fleet of simulated RDM responders.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/openlighting/rdmresponder/internal/config"
	"github.com/openlighting/rdmresponder/internal/rdm"
	"github.com/openlighting/rdmresponder/internal/rdmmetrics"
)

var (
	// configPath is the path to the responder-fleet YAML configuration.
	configPath string

	// cfg is the loaded configuration, populated in PersistentPreRunE.
	cfg *config.Config

	// fleet holds every configured responder, keyed by UID string.
	fleet map[string]rdm.Responder

	// metrics holds the process-wide Prometheus collector, registered
	// against registry (served by the serve command).
	metrics  *rdmmetrics.Collector
	registry *prometheus.Registry

	// logger is the process-wide structured logger.
	logger *slog.Logger
)

// rootCmd is the top-level cobra command for rdmsim.
var rootCmd = &cobra.Command{
	Use:   "rdmsim",
	Short: "Simulate a fleet of RDM responders",
	Long:  "rdmsim loads a declarative responder-fleet configuration and simulates their RDM request/response behavior, for exercising RDM controllers without physical hardware.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		// Build the fleet once per process so responder state (preset
		// programming, DMX addresses, sensor history, AckTimer queues)
		// is shared by every command that runs in it.
		if fleet != nil {
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		logger = slog.New(newHandler(cfg.Log))
		slog.SetDefault(logger)

		built, err := buildFleet(cfg)
		if err != nil {
			return fmt.Errorf("build responder fleet: %w", err)
		}
		fleet = built

		registry = prometheus.NewRegistry()
		metrics = rdmmetrics.NewCollector(registry)

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newHandler(lc config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(lc.Level)}
	if lc.Format == "text" {
		return slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.NewJSONHandler(os.Stderr, opts)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "rdmsim.yaml",
		"path to the responder-fleet configuration file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(sendCmd())
	rootCmd.AddCommand(listRespondersCmd())
	rootCmd.AddCommand(listPIDsCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
