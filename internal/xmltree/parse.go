package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrNoRoot is returned when the input holds no element at all
var ErrNoRoot = errors.New("xml document has no root element")

// Parse reads a document and returns its root element. Comments, processing
// instructions and directives are dropped; text (whitespace included) is kept.
func Parse(r io.Reader, charsetReader func(string, io.Reader) (io.Reader, error)) (*Element, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	return ParseDecoder(d)
}

// ParseDecoder builds the tree from an existing decoder
func ParseDecoder(d *xml.Decoder) (*Element, error) {
	var (
		root  *Element
		stack []*Element
	)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: qualify(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualify(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("failed to parse XML: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue // whitespace around the root
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, Text(string(t)))
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// qualify keeps prefixed names such as xmlns:maml readable; documentation
// files are namespace-free so plain local names are the common case.
func qualify(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	return n.Local
}
