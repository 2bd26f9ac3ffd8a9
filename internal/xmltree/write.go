package xmltree

import (
	"bufio"
	"io"
	"strings"
)

// Declaration is the prolog written by Write
const Declaration = `<?xml version="1.0" encoding="utf-8"?>`

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

// Write serializes the document with an XML declaration and two-space
// indentation. Elements containing text are written inline (mixed content
// is whitespace-sensitive); element-only content is one child per line.
func Write(w io.Writer, root *Element) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Declaration)
	bw.WriteByte('\n')
	writeElement(bw, root, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

func writeElement(w *bufio.Writer, el *Element, depth int) {
	indent(w, depth)
	writeStart(w, el)
	if len(el.Children) == 0 {
		w.WriteString(" />")
		return
	}
	w.WriteByte('>')

	if hasText(el.Children) {
		for _, c := range el.Children {
			writeNodeInline(w, c)
		}
	} else {
		for _, c := range el.Children {
			w.WriteByte('\n')
			switch v := c.(type) {
			case *Element:
				writeElement(w, v, depth+1)
			case Comment:
				indent(w, depth+1)
				writeComment(w, v)
			}
		}
		w.WriteByte('\n')
		indent(w, depth)
	}
	writeEnd(w, el)
}

func writeInline(w *bufio.Writer, el *Element) {
	writeStart(w, el)
	if len(el.Children) == 0 {
		w.WriteString(" />")
		return
	}
	w.WriteByte('>')
	for _, c := range el.Children {
		writeNodeInline(w, c)
	}
	writeEnd(w, el)
}

func writeNodeInline(w *bufio.Writer, n Node) {
	switch v := n.(type) {
	case *Element:
		writeInline(w, v)
	case Text:
		textEscaper.WriteString(w, string(v))
	case Comment:
		writeComment(w, v)
	}
}

func writeStart(w *bufio.Writer, el *Element) {
	w.WriteByte('<')
	w.WriteString(el.Name)
	for _, a := range el.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		attrEscaper.WriteString(w, a.Value)
		w.WriteByte('"')
	}
}

func writeEnd(w *bufio.Writer, el *Element) {
	w.WriteString("</")
	w.WriteString(el.Name)
	w.WriteByte('>')
}

func writeComment(w *bufio.Writer, c Comment) {
	// "--" is not allowed inside comments
	body := strings.ReplaceAll(string(c), "--", "- -")
	if strings.HasSuffix(body, "-") {
		body += " "
	}
	w.WriteString("<!--")
	w.WriteString(body)
	w.WriteString("-->")
}

func indent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}

func hasText(nodes []Node) bool {
	for _, n := range nodes {
		if _, ok := n.(Text); ok {
			return true
		}
	}
	return false
}
