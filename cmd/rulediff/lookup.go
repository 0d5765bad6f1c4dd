package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"srs-hq/rulediff/pkg/cli"
	"srs-hq/rulediff/pkg/lookup"
)

var lookupFlags struct {
	mode string
	json bool
}

var lookupCmd = &cobra.Command{
	Use:   "lookup RULE_NAME",
	Short: "Show the stored configuration of one rule",
	Long: `Look up the stored configuration of one rule, through a rulediff server
or directly in the store, using the configured credentials.

Examples:
  rulediff lookup DiskUsage
  rulediff lookup DiskUsage --lookup-mode store --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(&lookupFlags.mode, "lookup-mode", "", "override lookup mode: http or store")
	lookupCmd.Flags().BoolVar(&lookupFlags.json, "json", false, "print the result as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if lookupFlags.mode != "" {
		cfg.Lookup.Mode = lookupFlags.mode
	}
	creds := credentials(&cfg.Credentials)
	if err := creds.Validate(); err != nil {
		return cli.NewConfigError("credentials", err.Error())
	}

	tel, err := newTelemetry(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// One-shot lookups skip the cache.
	cfg.Lookup.Cache.Enabled = false
	b, err := newBackend(cmd.Context(), cfg, tel, cfg.Lookup.Mode)
	if err != nil {
		return err
	}
	defer b.Close()

	result, err := b.lookuper.Lookup(cmd.Context(), lookup.Request{Name: args[0], Credentials: creds})
	if err != nil {
		return cli.NewCommandError("lookup", err)
	}

	out := cmd.OutOrStdout()
	if lookupFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprintln(out, result.Pairs())
	return err
}
