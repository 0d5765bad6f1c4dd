package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"srs-hq/rulediff/pkg/diff"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/rules"
)

func sampleReport() *Report {
	return &Report{
		ID:        "0b6f3c8e-0000-4000-8000-000000000001",
		CreatedAt: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
		Enriched:  true,
		Summary:   diff.Summary{Dropped: 1, Added: 1, Retained: 1},
		Dropped: []enrich.EnrichedRule{{
			Rule:     rules.Rule{Name: `Foo "Bar"`, Description: "line one\r\n\nline two"},
			External: lookup.StatusResult(lookup.StatusNotConfigured),
		}},
		Added: []rules.Rule{{Name: "R3", Description: "brand new"}},
		Retained: []enrich.EnrichedRule{{
			Rule: rules.Rule{Name: "R2", Description: "kept"},
			External: lookup.FieldsResult([]lookup.Field{
				{Key: "RULE_NAME", Value: "R2"},
				{Key: "SEVERITY", Value: 3},
			}),
		}},
		Diagnostics: diff.Diagnostics{Policy: diff.LastWriteWins},
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`Foo "Bar"`, `"Foo ""Bar"""`},
		{"a\nb", `"a b"`},
		{"a\r\n\r\nb", `"a b"`},
		{"", `""`},
		{"x,y", `"x,y"`},
	}
	for _, tt := range tests {
		if got := Field(tt.in); got != tt.want {
			t.Errorf("Field(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	r := sampleReport()

	tests := []struct {
		partition Partition
		want      string
	}{
		{
			partition: PartitionDropped,
			want: "Rule Name,Description,DB Data\n" +
				`"Foo ""Bar""","line one line two","Not Configured in DB"` + "\n",
		},
		{
			partition: PartitionAdded,
			want: "Rule Name,Description\n" +
				`"R3","brand new"` + "\n",
		},
		{
			partition: PartitionRetained,
			want: "Rule Name,Description,DB Data\n" +
				`"R2","kept","RULE_NAME: R2 SEVERITY: 3"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.partition), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteCSV(&buf, r, tt.partition); err != nil {
				t.Fatalf("WriteCSV() error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteCSV_UnknownPartition(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, sampleReport(), Partition("bogus"))
	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("error = %v, want ExportError", err)
	}
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteDir(dir, sampleReport())
	if err != nil {
		t.Fatalf("WriteDir() error: %v", err)
	}

	want := []string{"dropped_rules.csv", "new_rules.csv", "matched_rules.csv"}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d", len(paths), len(want))
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Errorf("path %d = %s, want %s", i, paths[i], name)
		}
		data, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.HasPrefix(string(data), "Rule Name,Description") {
			t.Errorf("%s has unexpected header: %q", name, data)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var decoded struct {
		ID       string `json:"id"`
		Dropped  []map[string]any
		Retained []struct {
			Name     string        `json:"name"`
			External lookup.Result `json:"external"`
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID == "" {
		t.Error("id missing")
	}
	if decoded.Dropped[0]["name"] != `Foo "Bar"` {
		t.Errorf("dropped name = %v", decoded.Dropped[0]["name"])
	}
	if got := decoded.Retained[0].External.Pairs(); got != "RULE_NAME: R2\nSEVERITY: 3" {
		t.Errorf("retained external = %q", got)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport(), TextOptions{}); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"dropped: 1", "Dropped rules", "New rules", "Matched rules", "R3", "Not Configured in DB"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteText(&buf, sampleReport(), TextOptions{Summary: true}); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	if strings.Contains(buf.String(), "Matched rules") {
		t.Error("summary output should not contain tables")
	}
}

func TestParsePartition(t *testing.T) {
	tests := map[string]Partition{
		"dropped":  PartitionDropped,
		"new":      PartitionAdded,
		"Added":    PartitionAdded,
		"matched":  PartitionRetained,
		"retained": PartitionRetained,
	}
	for in, want := range tests {
		got, err := ParsePartition(in)
		if err != nil || got != want {
			t.Errorf("ParsePartition(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParsePartition("all"); err == nil {
		t.Error("ParsePartition(\"all\") should fail")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 100)
	if got := []rune(Truncate(long)); len(got) != descriptionWidth {
		t.Errorf("Truncate length = %d, want %d", len(got), descriptionWidth)
	}
	if got := Truncate("a\n  b"); got != "a b" {
		t.Errorf("Truncate = %q", got)
	}
}
