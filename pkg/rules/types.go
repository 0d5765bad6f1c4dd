package rules

import "srs-hq/rulediff/pkg/markup"

// Field names read from a rule record.
const (
	ruleKey          = "rule"
	nameKey          = "name"
	displayNameKey   = "display_name"
	documentationKey = "documentation"
)

// Rule is a rule extracted from a document. Name is the identity key.
type Rule struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description"`
}

// Stats describes one extraction pass.
type Stats struct {
	// Records is the number of rule records located in the document.
	Records int `json:"records"`

	// Extracted is the number of rules produced.
	Extracted int `json:"extracted"`

	// Unnamed is the number of records skipped because they carry no name.
	Unnamed int `json:"unnamed"`
}

// textOf returns the text carried by a node: the scalar text, the reserved
// text field of a mapping, or the text of the first element of a sequence.
func textOf(n *markup.Node) string {
	switch n.Kind() {
	case markup.KindMapping:
		if t, ok := n.Get(markup.TextKey); ok {
			return t.Text()
		}
		return ""
	case markup.KindSequence:
		items := n.Items()
		if len(items) == 0 {
			return ""
		}
		return textOf(items[0])
	default:
		return n.Text()
	}
}

// fieldText returns the text of a record field, or "" when absent.
func fieldText(record *markup.Node, key string) string {
	v, ok := record.Get(key)
	if !ok {
		return ""
	}
	return textOf(v)
}
