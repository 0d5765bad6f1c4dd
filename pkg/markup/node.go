package markup

// Kind identifies the variant held by a Node.
type Kind int

const (
	// KindScalar is a text value.
	KindScalar Kind = iota
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindMapping is an ordered set of named fields.
	KindMapping
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// TextKey is the reserved mapping field that holds an element's own text
// when the element also has attributes or child elements.
const TextKey = "#text"

// Field is one named entry of a mapping node.
type Field struct {
	Key   string
	Value *Node
}

// Node is a tagged variant: Scalar, Sequence or Mapping.
// The zero value and a nil *Node both behave as an empty scalar.
type Node struct {
	kind   Kind
	text   string
	items  []*Node
	fields []Field
}

// Scalar returns a scalar node holding text.
func Scalar(text string) *Node {
	return &Node{kind: KindScalar, text: text}
}

// Sequence returns a sequence node holding items.
func Sequence(items ...*Node) *Node {
	return &Node{kind: KindSequence, items: items}
}

// Mapping returns a mapping node holding fields in the given order.
// Repeated keys collapse into a sequence exactly as the parser does.
func Mapping(fields ...Field) *Node {
	n := &Node{kind: KindMapping}
	for _, f := range fields {
		n.add(f.Key, f.Value)
	}
	return n
}

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindScalar
	}
	return n.kind
}

// IsScalar reports whether n is a scalar.
func (n *Node) IsScalar() bool { return n.Kind() == KindScalar }

// IsSequence reports whether n is a sequence.
func (n *Node) IsSequence() bool { return n.Kind() == KindSequence }

// IsMapping reports whether n is a mapping.
func (n *Node) IsMapping() bool { return n.Kind() == KindMapping }

// Text returns the scalar text, or "" for other variants.
func (n *Node) Text() string {
	if n == nil || n.kind != KindScalar {
		return ""
	}
	return n.text
}

// Items returns the elements of a sequence, or nil for other variants.
func (n *Node) Items() []*Node {
	if n == nil || n.kind != KindSequence {
		return nil
	}
	return n.items
}

// Fields returns the fields of a mapping in document order, or nil for
// other variants.
func (n *Node) Fields() []Field {
	if n == nil || n.kind != KindMapping {
		return nil
	}
	return n.fields
}

// Get returns the value of the named mapping field.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMapping {
		return nil, false
	}
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Len returns the number of items or fields; scalars have length 0.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.fields)
	default:
		return 0
	}
}

// add appends a field, collapsing a repeated key into a sequence that keeps
// the position of the first occurrence.
func (n *Node) add(key string, value *Node) {
	for i, f := range n.fields {
		if f.Key != key {
			continue
		}
		if f.Value.IsSequence() {
			f.Value.items = append(f.Value.items, value)
		} else {
			n.fields[i].Value = Sequence(f.Value, value)
		}
		return
	}
	n.fields = append(n.fields, Field{Key: key, Value: value})
}
