package rules

import (
	"regexp"
	"strings"

	"srs-hq/rulediff/pkg/markup"
)

const (
	// DescriptionSeparator joins paragraph and preformatted texts.
	DescriptionSeparator = " "

	// LineBreak separates the heading and the attribute table from the body.
	LineBreak = "<br/>"

	// SetNameToken marks the attribute table row kept in a description.
	SetNameToken = "set_name"

	setNameTableOpen  = `<table border="1" width="600">`
	setNameTableClose = `</table>`
)

// Matching is best-effort over free-form markup, not a strict parse.
var (
	paragraphPattern    = regexp.MustCompile(`(?is)<p>(.*?)</p>`)
	preformattedPattern = regexp.MustCompile(`(?is)<pre>(.*?)</pre>`)
	tablePattern        = regexp.MustCompile(`(?is)<table.*?</table>`)
	rowPattern          = regexp.MustCompile(`(?is)<tr(?:\s[^>]*)?>.*?</tr>`)
	setNameCellPattern  = regexp.MustCompile(`(?is)<td[^>]*>\s*(?:<(?:i|em|b)>\s*)?` + SetNameToken + `\s*(?:</(?:i|em|b)>\s*)?</td>`)
)

// Synthesize builds the description of a rule record. It is pure and never
// fails: missing documentation gives an empty body and unmatched markup
// contributes nothing.
func Synthesize(record *markup.Node) string {
	body := SynthesizeDocumentation(documentation(record))

	if display := fieldText(record, displayNameKey); display != "" {
		return "<strong>" + display + "</strong>" + LineBreak + body
	}
	return body
}

// SynthesizeDocumentation extracts paragraphs, preformatted blocks and the
// set_name table row from a documentation string.
func SynthesizeDocumentation(doc string) string {
	if doc == "" {
		return ""
	}

	var parts []string
	for _, pattern := range []*regexp.Regexp{paragraphPattern, preformattedPattern} {
		for _, m := range pattern.FindAllStringSubmatch(doc, -1) {
			if text := strings.TrimSpace(m[1]); text != "" {
				parts = append(parts, text)
			}
		}
	}

	body := strings.Join(parts, DescriptionSeparator)
	if row := setNameRow(doc); row != "" {
		body += LineBreak + setNameTableOpen + row + setNameTableClose
	}
	return body
}

// setNameRow returns the first row of the first table whose cell holds the
// set_name token, or "".
func setNameRow(doc string) string {
	table := tablePattern.FindString(doc)
	if table == "" {
		return ""
	}
	for _, row := range rowPattern.FindAllString(table, -1) {
		if setNameCellPattern.MatchString(row) {
			return strings.TrimSpace(row)
		}
	}
	return ""
}

// documentation returns the documentation text of a record: a plain string
// or the reserved text field of a markup-wrapped value.
func documentation(record *markup.Node) string {
	v, ok := record.Get(documentationKey)
	if !ok {
		return ""
	}
	switch v.Kind() {
	case markup.KindScalar:
		return v.Text()
	case markup.KindMapping:
		if t, ok := v.Get(markup.TextKey); ok {
			return t.Text()
		}
	}
	return ""
}
