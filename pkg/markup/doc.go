// Package markup converts rule-definition XML into a generic tree.
//
// # Tree Shape
//
// A parsed document is a tree of [Node] values. Every node is exactly one of
// three variants:
//
//   - Scalar: an element that carries only text (or nothing at all)
//   - Sequence: the collapsed form of repeated sibling elements
//   - Mapping: an element with attributes or children, fields in document order
//
// The asymmetry between a single element and repeated elements is preserved
// deliberately: one <rule> inside a container is a Mapping field, two or more
// become a Sequence. Consumers must handle both shapes.
//
// Attributes become fields with no prefix, namespace prefixes are dropped, and
// text that sits next to attributes or children is stored under [TextKey].
//
// # Usage
//
//	tree, err := markup.Parse(data)
//	if err != nil {
//	    return err
//	}
//	if rules, ok := tree.Get("rules"); ok {
//	    fmt.Println(rules.Kind())
//	}
package markup
