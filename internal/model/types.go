package model

// Kind classifies a type reference for display purposes
type Kind int

const (
	KindNamed Kind = iota
	KindObject
	KindString
	KindBool
	KindByte
	KindChar
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindArray
)

// TypeRef describes a declared type as seen by the extractor
type TypeRef struct {
	Kind     Kind
	FullName string   // "import/path.Widget", "string", "[]int"
	Name     string   // Simple (non-qualified) name: "Widget"
	Elem     *TypeRef // Element type for KindArray
	IsEnum   bool
}

// IsArray reports whether the type is a slice or array
func (t TypeRef) IsArray() bool {
	return t.Kind == KindArray && t.Elem != nil
}

// IsVoid reports whether the reference names no type
func (t TypeRef) IsVoid() bool {
	return t.FullName == "" && t.Name == "" && t.Kind == KindNamed
}
