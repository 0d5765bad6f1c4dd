package report

import (
	"fmt"
	"strings"
	"time"

	"srs-hq/rulediff/pkg/diff"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/rules"
)

// Partition names a report section.
type Partition string

const (
	PartitionDropped  Partition = "dropped"
	PartitionAdded    Partition = "added"
	PartitionRetained Partition = "retained"
)

// Partitions lists all partitions in report order.
var Partitions = []Partition{PartitionDropped, PartitionAdded, PartitionRetained}

// ParsePartition accepts a partition name. "new" and "matched" are accepted
// as aliases of added and retained.
func ParsePartition(s string) (Partition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dropped":
		return PartitionDropped, nil
	case "added", "new":
		return PartitionAdded, nil
	case "retained", "matched":
		return PartitionRetained, nil
	default:
		return "", fmt.Errorf("unknown partition %q (valid: dropped, added, retained)", s)
	}
}

// FileName returns the CSV file name of the partition.
func (p Partition) FileName() string {
	switch p {
	case PartitionDropped:
		return "dropped_rules.csv"
	case PartitionAdded:
		return "new_rules.csv"
	case PartitionRetained:
		return "matched_rules.csv"
	default:
		return string(p) + "_rules.csv"
	}
}

// Sources describes where the compared documents came from.
type Sources struct {
	Old string `json:"old,omitempty"`
	New string `json:"new,omitempty"`
}

// Stats holds extraction statistics of both documents.
type Stats struct {
	Old rules.Stats `json:"old"`
	New rules.Stats `json:"new"`
}

// Report is the outcome of one comparison.
type Report struct {
	ID          string                `json:"id"`
	CreatedAt   time.Time             `json:"createdAt"`
	Sources     Sources               `json:"sources"`
	Enriched    bool                  `json:"enriched"`
	Summary     diff.Summary          `json:"summary"`
	Dropped     []enrich.EnrichedRule `json:"dropped"`
	Added       []rules.Rule          `json:"added"`
	Retained    []enrich.EnrichedRule `json:"retained"`
	Changes     []diff.Change         `json:"changes"`
	Diagnostics diff.Diagnostics      `json:"diagnostics"`
	Stats       Stats                 `json:"stats"`
}

// Len returns the number of rules in partition p.
func (r *Report) Len(p Partition) int {
	switch p {
	case PartitionDropped:
		return len(r.Dropped)
	case PartitionAdded:
		return len(r.Added)
	case PartitionRetained:
		return len(r.Retained)
	}
	return 0
}
