package report

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"srs-hq/rulediff/pkg/enrich"
)

var (
	enrichedHeader = []string{"Rule Name", "Description", "DB Data"}
	addedHeader    = []string{"Rule Name", "Description"}

	lineBreaks = regexp.MustCompile(`[\r\n]+`)
)

// Field prepares a value for a CSV cell: newline runs become one space,
// quotes are doubled and the result is wrapped in quotes.
func Field(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes partition p of r to w.
func WriteCSV(w io.Writer, r *Report, p Partition) error {
	bw := bufio.NewWriter(w)

	switch p {
	case PartitionDropped:
		writeEnriched(bw, r.Dropped)
	case PartitionRetained:
		writeEnriched(bw, r.Retained)
	case PartitionAdded:
		bw.WriteString(strings.Join(addedHeader, ",") + "\n")
		for _, rule := range r.Added {
			writeRow(bw, rule.Name, rule.Description)
		}
	default:
		return NewExportError("csv", string(p), fmt.Errorf("unknown partition"))
	}

	if err := bw.Flush(); err != nil {
		return NewExportError("csv", p.FileName(), err)
	}
	return nil
}

func writeEnriched(bw *bufio.Writer, list []enrich.EnrichedRule) {
	bw.WriteString(strings.Join(enrichedHeader, ",") + "\n")
	for _, rule := range list {
		writeRow(bw, rule.Name, rule.Description, rule.External.Pairs())
	}
}

func writeRow(bw *bufio.Writer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(Field(f))
	}
	bw.WriteByte('\n')
}
