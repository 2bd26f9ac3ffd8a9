package extractor

import (
	"go/types"
	"sort"

	"mamlgen/internal/model"
)

// typeRef converts a go/types type into the extractor's type reference.
// Pointers are transparent; slices and arrays become KindArray.
func typeRef(t types.Type) model.TypeRef {
	t = types.Unalias(t)

	switch u := t.(type) {
	case *types.Pointer:
		return typeRef(u.Elem())

	case *types.Slice:
		return arrayRef(typeRef(u.Elem()))

	case *types.Array:
		return arrayRef(typeRef(u.Elem()))

	case *types.Basic:
		return basicRef(u)

	case *types.Interface:
		if u.Empty() {
			return model.TypeRef{Kind: model.KindObject, FullName: "any", Name: "any"}
		}

	case *types.Named:
		obj := u.Obj()
		full := obj.Name()
		if obj.Pkg() != nil {
			full = obj.Pkg().Path() + "." + obj.Name()
		}
		return model.TypeRef{
			Kind:     model.KindNamed,
			FullName: full,
			Name:     obj.Name(),
			IsEnum:   len(enumValues(u)) > 0,
		}
	}

	name := types.TypeString(t, func(p *types.Package) string { return p.Name() })
	return model.TypeRef{
		Kind:     model.KindNamed,
		FullName: types.TypeString(t, nil),
		Name:     name,
	}
}

func arrayRef(elem model.TypeRef) model.TypeRef {
	return model.TypeRef{
		Kind:     model.KindArray,
		FullName: "[]" + elem.FullName,
		Name:     elem.Name + "[]",
		Elem:     &elem,
	}
}

func basicRef(b *types.Basic) model.TypeRef {
	ref := model.TypeRef{FullName: b.Name(), Name: b.Name(), Kind: model.KindNamed}

	switch b.Kind() {
	case types.Bool, types.UntypedBool:
		ref.Kind = model.KindBool
	case types.String, types.UntypedString:
		ref.Kind = model.KindString
	case types.Uint8:
		ref.Kind = model.KindByte
	case types.Int32, types.UntypedRune:
		// rune is an alias of int32 but keeps its own name
		if b.Name() == "rune" || b.Kind() == types.UntypedRune {
			ref.Kind = model.KindChar
		} else {
			ref.Kind = model.KindInt32
		}
	case types.Int, types.UntypedInt:
		ref.Kind = model.KindInt32
	case types.Int16:
		ref.Kind = model.KindInt16
	case types.Uint16:
		ref.Kind = model.KindUint16
	case types.Uint, types.Uint32:
		ref.Kind = model.KindUint32
	case types.Int64:
		ref.Kind = model.KindInt64
	case types.Uint64:
		ref.Kind = model.KindUint64
	case types.Float32:
		ref.Kind = model.KindFloat32
	case types.Float64, types.UntypedFloat:
		ref.Kind = model.KindFloat64
	}
	return ref
}

// enumValues returns the exported constants declared with exactly the named
// type, in source order. Only types with a basic underlying type qualify.
func enumValues(named *types.Named) []string {
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return nil
	}
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}

	var consts []*types.Const
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() {
			continue
		}
		if types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}

	sort.SliceStable(consts, func(i, j int) bool {
		return consts[i].Pos() < consts[j].Pos()
	})

	values := make([]string, 0, len(consts))
	for _, c := range consts {
		values = append(values, c.Name())
	}
	return values
}

// enumValuesOf returns enum values for a parameter type, looking through
// pointers but not through slices
func enumValuesOf(t types.Type) []string {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	if named, ok := t.(*types.Named); ok {
		return enumValues(named)
	}
	return nil
}
