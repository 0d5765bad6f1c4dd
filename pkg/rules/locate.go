package rules

import "srs-hq/rulediff/pkg/markup"

// Locate returns every rule record in tree, in document order.
//
// A "rule" field holding a sequence contributes each mapping element; a
// "rule" field holding a single mapping contributes that mapping. The walk
// then continues into every non-scalar field, including the rule values
// themselves. A nil or scalar tree yields nil.
func Locate(tree *markup.Node) []*markup.Node {
	var found []*markup.Node
	collect(tree, &found)
	return found
}

func collect(n *markup.Node, found *[]*markup.Node) {
	switch n.Kind() {
	case markup.KindSequence:
		for _, item := range n.Items() {
			collect(item, found)
		}

	case markup.KindMapping:
		if rule, ok := n.Get(ruleKey); ok {
			switch rule.Kind() {
			case markup.KindSequence:
				for _, item := range rule.Items() {
					if item.IsMapping() {
						*found = append(*found, item)
					}
				}
			case markup.KindMapping:
				*found = append(*found, rule)
			}
		}

		for _, f := range n.Fields() {
			if !f.Value.IsScalar() {
				collect(f.Value, found)
			}
		}
	}
}
