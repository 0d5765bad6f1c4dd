package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"srs-hq/rulediff/pkg/cli"
	"srs-hq/rulediff/pkg/comparator"
	"srs-hq/rulediff/pkg/rules"
	"srs-hq/rulediff/pkg/source"
)

var extractFlags struct {
	format string
}

var extractCmd = &cobra.Command{
	Use:   "extract FILE.xml",
	Short: "List the rules of one document",
	Long: `Extract the rules of one rule-definition document and print them with
their synthesized descriptions.

Examples:
  # Table of rules
  rulediff extract rules.xml

  # Rules as JSON
  rulediff extract rules.xml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractFlags.format, "format", "f", "text", "output format: text, json or csv")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(extractFlags.format)
	if err != nil {
		return err
	}

	tel, err := newTelemetry(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	doc, err := source.ReadFile(args[0])
	if err != nil {
		return comparator.NewInputError("document", comparator.ErrUnreadableDocument, err)
	}

	extractor := rules.NewExtractor(rules.Options{
		Sanitize: cfg.Rules.SanitizeDescriptions,
		Logger:   tel.Logger(),
	})
	list, stats, err := extractor.Extract(doc.Data)
	if err != nil {
		return comparator.NewInputError("document", comparator.ErrUnreadableDocument, err)
	}

	tel.Logger().Debug("extracted rules",
		"document", doc.Name,
		"records", stats.Records,
		"extracted", stats.Extracted,
	)
	if err := cli.WriteRules(cmd.OutOrStdout(), list, format); err != nil {
		return cli.NewCommandError("extract", fmt.Errorf("failed to write rules: %w", err))
	}
	return nil
}
