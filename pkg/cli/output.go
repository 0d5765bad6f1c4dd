package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"srs-hq/rulediff/pkg/report"
	"srs-hq/rulediff/pkg/rules"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is a terminal rendering (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatCSV is one partition as CSV.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unknown output format %q (valid: text, json, csv)", s))
	}
}

// ReportOptions controls WriteReport.
type ReportOptions struct {
	Format OutputFormat

	// Partition selects the CSV partition. Ignored by other formats.
	Partition report.Partition

	// Summary limits text output to counts.
	Summary bool
}

// WriteReport renders a comparison report in the requested format.
func WriteReport(w io.Writer, r *report.Report, opts ReportOptions) error {
	switch opts.Format {
	case FormatJSON:
		return report.WriteJSON(w, r)
	case FormatCSV:
		p := opts.Partition
		if p == "" {
			p = report.PartitionDropped
		}
		return report.WriteCSV(w, r, p)
	default:
		return report.WriteText(w, r, report.TextOptions{Summary: opts.Summary})
	}
}

var ruleHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// WriteRules renders extracted rules. CSV output uses the added-rules layout.
func WriteRules(w io.Writer, list []rules.Rule, format OutputFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case FormatCSV:
		return report.WriteCSV(w, &report.Report{Added: list}, report.PartitionAdded)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RULE", "DISPLAY NAME", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return ruleHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, r := range list {
		t.Row(r.Name, r.DisplayName, report.Truncate(r.Description))
	}
	_, err := fmt.Fprintf(w, "%s\n%d rules\n", t.Render(), len(list))
	return err
}
