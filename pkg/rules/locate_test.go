package rules

import (
	"testing"

	"srs-hq/rulediff/pkg/markup"
)

func parse(t *testing.T, doc string) *markup.Node {
	t.Helper()
	tree, err := markup.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return tree
}

func names(records []*markup.Node) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, fieldText(r, nameKey))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "single rule in container",
			doc:  `<rules><rule><name>R1</name></rule></rules>`,
			want: []string{"R1"},
		},
		{
			name: "repeated rules",
			doc:  `<rules><rule><name>R1</name></rule><rule><name>R2</name></rule></rules>`,
			want: []string{"R1", "R2"},
		},
		{
			name: "deeply nested",
			doc: `<config><modules><module><rulesets><set><rule><name>Deep</name></rule></set></rulesets></module>
				<module><rule><name>A</name></rule><rule><name>B</name></rule></module></modules></config>`,
			want: []string{"Deep", "A", "B"},
		},
		{
			name: "rule with attributes only",
			doc:  `<rules><rule name="Attr"/></rules>`,
			want: []string{"Attr"},
		},
		{
			name: "rules within rules",
			doc:  `<rules><rule><name>Outer</name><rule><name>Inner</name></rule></rule></rules>`,
			want: []string{"Outer", "Inner"},
		},
		{
			name: "scalar rule values are not records",
			doc:  `<rules><rule>text only</rule></rules>`,
			want: []string{},
		},
		{
			name: "no rules",
			doc:  `<config><setting>x</setting></config>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Locate(parse(t, tt.doc)))
			if !equalStrings(got, tt.want) {
				t.Errorf("Locate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocate_SingleRuleIsOneRecord(t *testing.T) {
	records := Locate(parse(t, `<rules><rule><name>Only</name><display_name>D</display_name><documentation>x</documentation></rule></rules>`))
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if !records[0].IsMapping() {
		t.Errorf("Expected mapping record, got %s", records[0].Kind())
	}
}

func TestLocate_NilAndScalarRoots(t *testing.T) {
	if got := Locate(nil); len(got) != 0 {
		t.Errorf("Locate(nil) returned %d records", len(got))
	}
	if got := Locate(markup.Scalar("rule")); len(got) != 0 {
		t.Errorf("Locate(scalar) returned %d records", len(got))
	}
}

func TestLocate_SequenceRoot(t *testing.T) {
	root := markup.Sequence(
		markup.Mapping(markup.Field{Key: "rule", Value: markup.Mapping(markup.Field{Key: "name", Value: markup.Scalar("S1")})}),
		markup.Scalar("ignored"),
	)
	got := names(Locate(root))
	if !equalStrings(got, []string{"S1"}) {
		t.Errorf("Locate() = %v", got)
	}
}
