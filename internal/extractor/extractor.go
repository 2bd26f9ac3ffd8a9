// Package extractor discovers the commands exported by a Go command module.
//
// A command is an exported struct type that has the capability method
// (ProcessRecord by default) in its method set and carries a marker field
// tagged cmdlet:"Verb,Noun", conventionally:
//
//	_ struct{} `cmdlet:"Get,Widget" output:"Widget"`
//
// Exported fields tagged param:"..." are its parameters.
package extractor

import (
	"go/token"
	"go/types"
	"reflect"
	"sort"

	"golang.org/x/tools/go/types/typeutil"

	"mamlgen/internal/logger"
	"mamlgen/internal/model"
)

// DefaultCapabilityMethod is the method every command type must have
const DefaultCapabilityMethod = "ProcessRecord"

// Extractor builds command descriptors from a module
type Extractor struct {
	// CapabilityMethod overrides DefaultCapabilityMethod when set
	CapabilityMethod string

	// Skipped collects the malformed command types of the last Extract call
	Skipped []*MalformedCommandError
}

// New creates an Extractor using the given capability method
func New(capabilityMethod string) *Extractor {
	return &Extractor{CapabilityMethod: capabilityMethod}
}

// Extract loads the module and returns its commands sorted by noun, then verb
func Extract(modulePath string) ([]*model.Command, error) {
	return New("").Extract(modulePath)
}

// Extract loads the module and returns its commands sorted by noun, then verb.
// Malformed command types are skipped and recorded in e.Skipped.
func (e *Extractor) Extract(modulePath string) ([]*model.Command, error) {
	pkg, err := Load(modulePath)
	if err != nil {
		return nil, err
	}
	for _, dep := range pkg.LocalDeps {
		logger.Info("Resolved dependency from module directory", "import", dep)
	}
	return e.Commands(pkg), nil
}

// Commands discovers the command types of an already loaded package
func (e *Extractor) Commands(pkg *Package) []*model.Command {
	e.Skipped = nil
	capability := e.CapabilityMethod
	if capability == "" {
		capability = DefaultCapabilityMethod
	}

	var msets typeutil.MethodSetCache
	commands := []*model.Command{}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() || obj.IsAlias() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}
		if !hasMethod(named, capability, &msets) {
			continue
		}

		cmd, err := e.buildCommand(pkg, named, st)
		if err != nil {
			logger.Warn("Skipping malformed command", "type", err.Type, "reason", err.Reason)
			e.Skipped = append(e.Skipped, err)
			continue
		}
		if cmd == nil {
			continue // no marker
		}
		commands = append(commands, cmd)
	}

	sort.SliceStable(commands, func(i, j int) bool {
		if commands[i].Noun != commands[j].Noun {
			return commands[i].Noun < commands[j].Noun
		}
		return commands[i].Verb < commands[j].Verb
	})
	return commands
}

func hasMethod(named *types.Named, method string, msets *typeutil.MethodSetCache) bool {
	for _, sel := range typeutil.IntuitiveMethodSet(named, msets) {
		if sel.Obj().Name() == method {
			return true
		}
	}
	return false
}

// buildCommand returns (nil, nil) when the type has no marker
func (e *Extractor) buildCommand(pkg *Package, named *types.Named, st *types.Struct) (*model.Command, *MalformedCommandError) {
	fullName := pkg.ImportPath + "." + named.Obj().Name()

	var (
		m     marker
		found bool
	)
	for i := 0; i < st.NumFields(); i++ {
		mk, ok, reason := parseMarker(reflect.StructTag(st.Tag(i)))
		if !ok {
			continue
		}
		if reason != "" {
			return nil, &MalformedCommandError{Type: fullName, Reason: reason}
		}
		m, found = mk, true
		break
	}
	if !found {
		return nil, nil
	}

	cmd := &model.Command{
		FullName: fullName,
		TypeName: named.Obj().Name(),
		Verb:     m.Verb,
		Noun:     m.Noun,
	}
	cmd.OutputTypes = resolveOutputs(pkg, fullName, m.Outputs)
	cmd.Parameters = collectParameters(fullName, st, make(map[*types.Struct]bool))
	return cmd, nil
}

// collectParameters walks the struct fields in declaration order, flattening
// embedded structs
func collectParameters(owner string, st *types.Struct, visiting map[*types.Struct]bool) []*model.Parameter {
	if visiting[st] {
		return nil
	}
	visiting[st] = true
	defer delete(visiting, st)

	params := []*model.Parameter{}
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if field.Embedded() {
			if _, isMarker := tag.Lookup(TagCmdlet); !isMarker {
				if inner, ok := embeddedStruct(field.Type()); ok {
					params = append(params, collectParameters(owner, inner, visiting)...)
					continue
				}
			}
		}

		if !field.Exported() {
			continue
		}
		value, ok := tag.Lookup(TagParam)
		if !ok {
			continue
		}

		bindings, warnings := parseBindings(value)
		for _, w := range warnings {
			logger.Warn("Ignoring param tag item", "command", owner, "parameter", field.Name(), "problem", w)
		}

		p := &model.Parameter{
			Name:       field.Name(),
			Type:       typeRef(field.Type()),
			EnumValues: enumValuesOf(field.Type()),
			Bindings:   bindings,
		}
		if aliases, has := tag.Lookup(TagAlias); has {
			p.Aliases = splitList(aliases)
		}
		if _, has := tag.Lookup(TagWildcards); has {
			p.Globbing = true
		}
		params = append(params, p)
	}
	return params
}

func embeddedStruct(t types.Type) (*types.Struct, bool) {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	st, ok := t.Underlying().(*types.Struct)
	return st, ok
}

// resolveOutputs evaluates the output tag entries as type expressions in the
// package scope, deduplicates them and orders them by full name
func resolveOutputs(pkg *Package, owner string, exprs []string) []model.TypeRef {
	seen := make(map[string]bool)
	outputs := []model.TypeRef{}
	for _, expr := range exprs {
		tv, err := types.Eval(pkg.Fset, pkg.Types, token.NoPos, expr)
		if err != nil || !tv.IsType() {
			logger.Warn("Ignoring unresolvable output type", "command", owner, "type", expr)
			continue
		}
		ref := typeRef(tv.Type)
		if seen[ref.FullName] {
			continue
		}
		seen[ref.FullName] = true
		outputs = append(outputs, ref)
	}
	sort.SliceStable(outputs, func(i, j int) bool {
		return outputs[i].FullName < outputs[j].FullName
	})
	return outputs
}
