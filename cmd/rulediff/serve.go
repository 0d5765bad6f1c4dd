package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"srs-hq/rulediff/pkg/cli"
	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/server"
	"srs-hq/rulediff/pkg/store"
	"srs-hq/rulediff/pkg/telemetry"
)

var serveFlags struct {
	listenAddress string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the rulediff HTTP service",
	Long: `Run the HTTP service. It answers rule lookups on /rule and comparisons on
/compare, and exposes /health, /ready, /version and metrics.

Examples:
  # Start with default config
  rulediff serve

  # Override listen address
  rulediff serve --listen 0.0.0.0:5000

  # Validate config without starting the server
  rulediff serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	tel, err := newTelemetry(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	// The service always reads the store; lookup.mode only applies to CLI
	// comparisons.
	b, err := newBackend(ctx, cfg, tel, modeStore)
	if err != nil {
		return err
	}
	defer b.Close()

	registerStoreCheck(tel, b.store, cfg)

	srv := server.New(&cfg.Server, &cfg.Telemetry.Metrics, server.Deps{
		Rules:      b.store,
		Comparator: newComparator(cfg, tel, b, nil),
		Telemetry:  tel,
	})

	tel.Logger().Info("rulediff starting",
		"version", Version,
		"listen_address", cfg.Server.ListenAddress,
		"store_driver", b.store.Driver(),
	)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

// registerStoreCheck adds a readiness check that pings the store with the
// configured credentials. Without credentials only file-backed drivers can
// be checked.
func registerStoreCheck(tel *telemetry.Telemetry, st *store.Store, cfg *config.Config) {
	creds := credentials(&cfg.Credentials)
	fileBacked := st.Driver() == store.DriverSQLite || st.Driver() == store.DriverSQLite3
	if creds.IsZero() && !fileBacked {
		tel.Logger().Info("no store credentials configured, skipping store readiness check")
		return
	}
	tel.Health().RegisterCheck("store", func(ctx context.Context) error {
		return st.Ping(ctx, creds)
	})
}
