package rules

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips markup that descriptions never produce themselves, such
// as scripts, event handlers and links, while keeping headings, paragraphs,
// code blocks and the attribute table.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer for synthesized descriptions.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "pre", "code", "strong", "b", "i", "em", "br", "span")
	p.AllowTables()
	p.AllowAttrs("border", "width").OnElements("table")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

	return &Sanitizer{policy: p}
}

// Sanitize returns description with disallowed markup removed.
func (s *Sanitizer) Sanitize(description string) string {
	return s.policy.Sanitize(description)
}
