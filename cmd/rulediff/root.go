package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"srs-hq/rulediff/pkg/cli"
	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/telemetry"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "rulediff",
	Short: "Compare XML rule-definition documents",
	Long: `rulediff compares two XML rule-definition documents and reports which
rules were dropped, added and retained between them.

Dropped and retained rules are enriched with the configuration stored for
them in the rules database, either directly or through a rulediff server.
Reports can be printed as a table, as JSON, or written as CSV files.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "rulediff.yaml", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

// loadConfig loads the global configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, cli.NewConfigError("config", "configuration not initialized")
	}

	switch {
	case logLevel != "":
		cfg.Telemetry.Logging.Level = logLevel
	case verbose:
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// newTelemetry builds telemetry that logs to w. Commands log to stderr so
// stdout carries only their output.
func newTelemetry(cfg *config.Config, w io.Writer) (*telemetry.Telemetry, error) {
	tel, err := telemetry.NewWithWriter(&cfg.Telemetry, buildInfo(), w)
	if err != nil {
		return nil, cli.NewConfigError("telemetry", err.Error())
	}
	return tel, nil
}
