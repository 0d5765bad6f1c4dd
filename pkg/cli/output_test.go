package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"srs-hq/rulediff/pkg/diff"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/report"
	"srs-hq/rulediff/pkg/rules"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"junit", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func testReport() *report.Report {
	return &report.Report{
		ID:      "rep-1",
		Summary: diff.Summary{Dropped: 1, Added: 1},
		Dropped: []enrich.EnrichedRule{{
			Rule:     rules.Rule{Name: "R1", Description: "Old rule"},
			External: lookup.StatusResult(lookup.StatusNotConfigured),
		}},
		Added: []rules.Rule{{Name: "R3", Description: "New rule"}},
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("csv defaults to dropped", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, testReport(), ReportOptions{Format: FormatCSV}); err != nil {
			t.Fatal(err)
		}
		want := "Rule Name,Description,DB Data\n\"R1\",\"Old rule\",\"Not Configured in DB\"\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("csv partition", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ReportOptions{Format: FormatCSV, Partition: report.PartitionAdded}
		if err := WriteReport(&buf, testReport(), opts); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(buf.String(), "Rule Name,Description\n\"R3\"") {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, testReport(), ReportOptions{Format: FormatJSON}); err != nil {
			t.Fatal(err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["id"] != "rep-1" {
			t.Errorf("id = %v", decoded["id"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, testReport(), ReportOptions{Format: FormatText}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "R1") || !strings.Contains(buf.String(), "R3") {
			t.Errorf("text output missing rules:\n%s", buf.String())
		}
	})
}

func TestWriteRules(t *testing.T) {
	list := []rules.Rule{
		{Name: "CpuLoad", DisplayName: "CPU load", Description: "Fires on load"},
		{Name: "DiskUsage", Description: "Fires on \"full\" disks"},
	}

	var buf bytes.Buffer
	if err := WriteRules(&buf, list, FormatCSV); err != nil {
		t.Fatal(err)
	}
	want := "Rule Name,Description\n\"CpuLoad\",\"Fires on load\"\n\"DiskUsage\",\"Fires on \"\"full\"\" disks\"\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteRules(&buf, list, FormatText); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"CpuLoad", "CPU load", "DiskUsage", "2 rules"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("text output missing %q:\n%s", s, buf.String())
		}
	}

	buf.Reset()
	if err := WriteRules(&buf, list, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var decoded []rules.Rule
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[0].DisplayName != "CPU load" {
		t.Errorf("decoded = %+v", decoded)
	}
}
