// Package xmldoc reads documentation-comment files: a <doc> root holding the
// assembly name and one <member name="X:..."> per documented symbol.
// Type (T:) and property (P:) members are indexed; every other kind is ignored.
package xmldoc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"mamlgen/internal/logger"
	"mamlgen/internal/xmltree"
)

// ErrDocFormat matches any *FormatError
var ErrDocFormat = errors.New("invalid documentation file")

// FormatError reports a documentation file that cannot be read or lacks a
// required element
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid documentation file %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDocFormat) work
func (e *FormatError) Is(target error) bool { return target == ErrDocFormat }

// EntryKind distinguishes type entries from property entries
type EntryKind int

const (
	TypeEntry EntryKind = iota
	PropertyEntry
)

// Entry is the documentation of one symbol. Summary and Remarks hold only
// text nodes and para elements; nil means the element was absent.
type Entry struct {
	Name       string // qualified name without the kind prefix
	Kind       EntryKind
	TypeName   string // owning type, properties only
	MemberName string // member name, properties only
	Summary    []xmltree.Node
	Remarks    []xmltree.Node

	index *Index
}

// Property returns the entry of a member of this type, or nil
func (e *Entry) Property(member string) *Entry {
	if e == nil || e.Kind != TypeEntry {
		return nil
	}
	return e.index.Property(e.Name + "." + member)
}

// Index maps qualified names to documentation entries
type Index struct {
	assembly   string
	types      map[string]*Entry
	properties map[string]*Entry
}

// Type returns the T: entry for a fully-qualified type name, or nil
func (idx *Index) Type(name string) *Entry {
	if idx == nil {
		return nil
	}
	return idx.types[name]
}

// Property returns the P: entry for "<type>.<member>", or nil
func (idx *Index) Property(name string) *Entry {
	if idx == nil {
		return nil
	}
	return idx.properties[name]
}

// PropertiesOf returns the property entries of a type ordered by member name
func (idx *Index) PropertiesOf(typeName string) []*Entry {
	if idx == nil {
		return nil
	}
	var result []*Entry
	for _, e := range idx.properties {
		if e.TypeName == typeName {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MemberName < result[j].MemberName
	})
	return result
}

// AssemblyName returns the content of doc/assembly/name
func (idx *Index) AssemblyName() string {
	if idx == nil {
		return ""
	}
	return idx.assembly
}

// Len returns the number of indexed entries
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.types) + len(idx.properties)
}

// Parse reads the documentation file at path
func Parse(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	return ParseReader(f, path)
}

// ParseReader reads a documentation file from r. name is used in errors.
func ParseReader(r io.Reader, name string) (*Index, error) {
	input, transcoded, err := decodeBOM(r)
	if err != nil {
		return nil, &FormatError{Path: name, Reason: "cannot read file", Err: err}
	}

	root, err := xmltree.Parse(input, charsetReader(transcoded))
	if err != nil {
		return nil, &FormatError{Path: name, Reason: "malformed XML", Err: err}
	}
	return build(root, name)
}

func build(root *xmltree.Element, name string) (*Index, error) {
	if root.Name != "doc" {
		return nil, &FormatError{Path: name, Reason: "missing doc root element"}
	}
	asm := root.Path("assembly", "name")
	if asm == nil {
		return nil, &FormatError{Path: name, Reason: "missing doc/assembly/name element"}
	}
	members := root.Element("members")
	if members == nil {
		return nil, &FormatError{Path: name, Reason: "missing doc/members element"}
	}

	idx := &Index{
		assembly:   strings.TrimSpace(asm.InnerText()),
		types:      make(map[string]*Entry),
		properties: make(map[string]*Entry),
	}

	for _, m := range members.Elements("member") {
		qualified, _ := m.Attr("name")
		if qualified == "" {
			return nil, &FormatError{Path: name, Reason: "member without a name attribute"}
		}

		prefix, symbol, ok := strings.Cut(qualified, ":")
		if !ok || symbol == "" {
			logger.Debug("Ignoring member with unknown name format", "member", qualified)
			continue
		}

		entry := &Entry{
			Name:    symbol,
			Summary: keepContent(m.Element("summary")),
			Remarks: keepContent(m.Element("remarks")),
			index:   idx,
		}

		switch prefix {
		case "T":
			entry.Kind = TypeEntry
			idx.add(idx.types, entry)
		case "P":
			dot := strings.LastIndex(symbol, ".")
			if dot <= 0 || dot == len(symbol)-1 {
				return nil, &FormatError{Path: name, Reason: fmt.Sprintf("property member %q has no owning type", qualified)}
			}
			entry.Kind = PropertyEntry
			entry.TypeName = symbol[:dot]
			entry.MemberName = symbol[dot+1:]
			idx.add(idx.properties, entry)
		}
	}

	logger.Debug("Indexed documentation file", "file", name, "assembly", idx.assembly,
		"types", len(idx.types), "properties", len(idx.properties))
	return idx, nil
}

// add replaces any earlier entry with the same name
func (idx *Index) add(table map[string]*Entry, e *Entry) {
	if _, exists := table[e.Name]; exists {
		logger.Warn("Duplicate documentation member replaces earlier entry", "member", e.Name)
	}
	table[e.Name] = e
}

// keepContent returns the text nodes and para children of el. A nil element
// yields nil; a present element always yields a non-nil slice.
func keepContent(el *xmltree.Element) []xmltree.Node {
	if el == nil {
		return nil
	}
	kept := []xmltree.Node{}
	for _, c := range el.Children {
		switch v := c.(type) {
		case xmltree.Text:
			kept = append(kept, v)
		case *xmltree.Element:
			if v.Name == "para" {
				kept = append(kept, v.Clone())
			}
		}
	}
	return kept
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decodeBOM strips a UTF-8 byte order mark and transcodes UTF-16 input to
// UTF-8. transcoded reports whether the declared encoding must be ignored.
func decodeBOM(r io.Reader) (io.Reader, bool, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, false, err
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		if _, err := br.Discard(len(bomUTF8)); err != nil {
			return nil, false, err
		}
		return br, false, nil
	case bytes.HasPrefix(head, bomUTF16BE), bytes.HasPrefix(head, bomUTF16LE):
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		return transform.NewReader(br, dec), true, nil
	}
	return br, false, nil
}

func charsetReader(transcoded bool) func(string, io.Reader) (io.Reader, error) {
	return func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			return input, nil
		}
		enc, err := ianaindex.IANA.Encoding(label)
		if err != nil {
			return nil, err
		}
		if enc == nil {
			return nil, fmt.Errorf("unsupported encoding %q", label)
		}
		return enc.NewDecoder().Reader(input), nil
	}
}
