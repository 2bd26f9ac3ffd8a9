// Package xmltree is a small ordered XML node tree. It keeps elements,
// attributes, text and comments exactly in insertion order so documents can
// be built programmatically and written back byte-for-byte reproducibly.
package xmltree

import (
	"strings"
)

// Node is an element, a text run or a comment
type Node interface {
	node()
}

// Attr is a single attribute. Name is written verbatim, prefix included.
type Attr struct {
	Name  string
	Value string
}

// Element is a named node with ordered attributes and children.
// Name is the qualified name as written, e.g. "maml:para".
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// Text is character data
type Text string

// Comment is an XML comment body (without the delimiters)
type Comment string

func (*Element) node() {}
func (Text) node()     {}
func (Comment) node()  {}

// NewElement creates an element and appends the given children, skipping nils
func NewElement(name string, children ...Node) *Element {
	e := &Element{Name: name}
	e.Add(children...)
	return e
}

// TextElement creates an element holding a single text child
func TextElement(name, text string) *Element {
	return &Element{Name: name, Children: []Node{Text(text)}}
}

// Add appends children, skipping nil nodes (including typed nil elements)
func (e *Element) Add(children ...Node) *Element {
	for _, c := range children {
		if isNil(c) {
			continue
		}
		e.Children = append(e.Children, c)
	}
	return e
}

// SetAttr appends an attribute, or replaces the value of an existing one in place
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Element returns the first child element with the given name, or nil
func (e *Element) Element(name string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// Elements returns all child elements with the given name
func (e *Element) Elements(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			result = append(result, el)
		}
	}
	return result
}

// Path walks child elements by name, e.g. Path("assembly", "name")
func (e *Element) Path(names ...string) *Element {
	cur := e
	for _, n := range names {
		if cur == nil {
			return nil
		}
		cur = cur.Element(n)
	}
	return cur
}

// Clone returns a deep copy of the element
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		Name:  e.Name,
		Attrs: append([]Attr(nil), e.Attrs...),
	}
	c.Children = CloneNodes(e.Children)
	return c
}

// CloneNodes deep-copies a node sequence
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if el, ok := n.(*Element); ok {
			out = append(out, el.Clone())
			continue
		}
		out = append(out, n)
	}
	return out
}

// InnerText concatenates all descendant text
func (e *Element) InnerText() string {
	var sb strings.Builder
	writeText(&sb, e.Children)
	return sb.String()
}

// PlainText flattens nodes to text with whitespace runs collapsed
func PlainText(nodes []Node) string {
	var sb strings.Builder
	writeText(&sb, nodes)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func writeText(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			sb.WriteString(string(v))
		case *Element:
			writeText(sb, v.Children)
			sb.WriteByte(' ')
		}
	}
}

// IsBlank reports whether text consists only of whitespace
func (t Text) IsBlank() bool {
	return strings.TrimSpace(string(t)) == ""
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	if el, ok := n.(*Element); ok && el == nil {
		return true
	}
	return false
}
