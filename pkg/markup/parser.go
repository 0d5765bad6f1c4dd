package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// element is an open element while the tree is being built.
type element struct {
	name  string
	node  *Node
	text  strings.Builder
	attrs int
}

// Parse converts an XML document into a tree rooted at a mapping whose single
// field is the document element.
//
// Parsing is lenient: HTML entities are accepted and void HTML elements are
// closed automatically. Input that cannot be tokenised returns a *SyntaxError.
func Parse(data []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charsetReader

	root := &Node{kind: KindMapping}
	var stack []*element

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newSyntaxError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, node: &Node{kind: KindMapping}}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				el.node.add(attr.Name.Local, Scalar(strings.TrimSpace(attr.Value)))
				el.attrs++
			}
			stack = append(stack, el)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			parent := root
			if len(stack) > 0 {
				parent = stack[len(stack)-1].node
			}
			parent.add(el.name, el.value())
		}
	}

	if len(stack) > 0 {
		return nil, newSyntaxError(fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].name))
	}

	return root, nil
}

// value finalises an element into the node stored on its parent.
func (el *element) value() *Node {
	text := strings.TrimSpace(el.text.String())
	if len(el.node.fields) == 0 {
		return Scalar(text)
	}
	if text != "" {
		el.node.add(TextKey, Scalar(text))
	}
	return el.node
}

// charsetReader decodes documents that declare a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
