package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// descriptionWidth truncates descriptions in terminal tables.
const descriptionWidth = 60

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// TextOptions controls the text rendering.
type TextOptions struct {
	// Summary prints only the counts.
	Summary bool
}

// WriteText writes a terminal rendering of r.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Comparison"), mutedStyle.Render(r.ID))
	if r.Sources.Old != "" || r.Sources.New != "" {
		fmt.Fprintf(&b, "old: %s\nnew: %s\n", r.Sources.Old, r.Sources.New)
	}
	fmt.Fprintf(&b, "dropped: %d  added: %d  retained: %d  changed: %d\n",
		r.Summary.Dropped, r.Summary.Added, r.Summary.Retained, r.Summary.Changed)
	if d := r.Diagnostics; d.OldShadowed > 0 || d.NewShadowed > 0 {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf(
			"duplicate names: %d shadowed in old, %d shadowed in new (%s)",
			d.OldShadowed, d.NewShadowed, d.Policy)))
	}

	if !opts.Summary {
		for _, p := range Partitions {
			if r.Len(p) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s\n%s\n", titleStyle.Render(sectionTitle(p)), partitionTable(r, p))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return NewExportError("text", "", err)
	}
	return nil
}

func sectionTitle(p Partition) string {
	switch p {
	case PartitionDropped:
		return "Dropped rules"
	case PartitionAdded:
		return "New rules"
	default:
		return "Matched rules"
	}
}

func partitionTable(r *Report, p Partition) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	switch p {
	case PartitionAdded:
		t.Headers(addedHeader...)
		for _, rule := range r.Added {
			t.Row(rule.Name, Truncate(rule.Description))
		}
	default:
		list := r.Dropped
		if p == PartitionRetained {
			list = r.Retained
		}
		t.Headers(enrichedHeader...)
		for _, rule := range list {
			t.Row(rule.Name, Truncate(rule.Description), rule.External.Pairs())
		}
	}
	return t.String()
}

// Truncate collapses whitespace and caps s at the table description width.
func Truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > descriptionWidth {
		return string(r[:descriptionWidth-1]) + "…"
	}
	return s
}
