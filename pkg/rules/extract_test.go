package rules

import (
	"errors"
	"strings"
	"testing"

	"srs-hq/rulediff/pkg/markup"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<srs:config xmlns:srs="urn:srs">
  <rulesets>
    <ruleset id="core">
      <rule>
        <name>cpu_high</name>
        <display_name>CPU High</display_name>
        <documentation format="html">&lt;p&gt;Raised on high CPU.&lt;/p&gt;</documentation>
      </rule>
      <rule>
        <display_name>Nameless</display_name>
      </rule>
      <rule>
        <name>disk_full</name>
        <documentation><![CDATA[<p>Disk is full.</p><script>alert(1)</script>]]></documentation>
      </rule>
    </ruleset>
  </rulesets>
</srs:config>`

func TestExtractor_Extract(t *testing.T) {
	out, stats, err := NewExtractor(Options{}).Extract([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}

	if stats.Records != 3 || stats.Extracted != 2 || stats.Unnamed != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(out))
	}

	if out[0].Name != "cpu_high" || out[0].DisplayName != "CPU High" {
		t.Errorf("Unexpected first rule: %+v", out[0])
	}
	if out[0].Description != "<strong>CPU High</strong><br/>Raised on high CPU." {
		t.Errorf("Unexpected description: %q", out[0].Description)
	}
	if out[1].Name != "disk_full" || out[1].Description != "Disk is full." {
		t.Errorf("Unexpected second rule: %+v", out[1])
	}
}

func TestExtractor_Sanitize(t *testing.T) {
	doc := `<rules><rule><name>x</name><display_name>X</display_name>` +
		`<documentation><![CDATA[<p>Hi <a href="javascript:alert(1)" onclick="x()">there</a><script>bad()</script></p>` +
		`<table><tr><td><i>set_name</i></td><td>v</td></tr></table>]]></documentation></rule></rules>`

	out, _, err := NewExtractor(Options{Sanitize: true}).Extract([]byte(doc))
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	desc := out[0].Description

	for _, banned := range []string{"<script", "javascript:", "onclick", "<a "} {
		if strings.Contains(desc, banned) {
			t.Errorf("Sanitized description still contains %q: %q", banned, desc)
		}
	}
	for _, kept := range []string{"<strong>X</strong>", "<table", "set_name"} {
		if !strings.Contains(desc, kept) {
			t.Errorf("Sanitized description lost %q: %q", kept, desc)
		}
	}
}

func TestExtractor_EmptyDocument(t *testing.T) {
	out, stats, err := NewExtractor(Options{}).Extract([]byte(`<config/>`))
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(out) != 0 || stats.Records != 0 {
		t.Errorf("Expected no rules, got %d (%+v)", len(out), stats)
	}
}

func TestExtractor_SyntaxError(t *testing.T) {
	_, _, err := NewExtractor(Options{}).Extract([]byte(`<rules><rule>`))
	var se *markup.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Expected *markup.SyntaxError, got %v", err)
	}
}

func TestExtract_Default(t *testing.T) {
	out, err := Extract([]byte(`<rules><rule name="a"/><rule name="b"/></rules>`))
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(out) != 2 || out[0].Name != "a" || out[1].Name != "b" {
		t.Errorf("Unexpected rules: %+v", out)
	}
}
