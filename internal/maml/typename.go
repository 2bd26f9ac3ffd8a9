package maml

import (
	"mamlgen/internal/model"
)

// simpleTypeNames is part of the output format; consumers match on these names
var simpleTypeNames = map[model.Kind]string{
	model.KindObject:  "object",
	model.KindString:  "string",
	model.KindBool:    "bool",
	model.KindByte:    "byte",
	model.KindChar:    "char",
	model.KindInt16:   "short",
	model.KindUint16:  "ushort",
	model.KindInt32:   "int",
	model.KindUint32:  "uint",
	model.KindInt64:   "long",
	model.KindUint64:  "ulong",
	model.KindFloat32: "float",
	model.KindFloat64: "double",
}

// SimpleTypeName returns the short display name of a type: arrays render as
// "<elem>[]", well-known types by their conventional short name, anything
// else by its unqualified name
func SimpleTypeName(t model.TypeRef) string {
	if t.IsArray() {
		return SimpleTypeName(*t.Elem) + "[]"
	}
	if name, ok := simpleTypeNames[t.Kind]; ok {
		return name
	}
	return t.Name
}
