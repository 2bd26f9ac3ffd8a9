package model

import (
	"sort"
)

// AllParameterSets is the parameter set name meaning "applies to every set"
const AllParameterSets = "__AllParameterSets"

// Named is the position of a parameter that can only be bound by name
const Named = -1

// Command represents a single exported cmdlet-like command type
type Command struct {
	// Identity
	FullName string // Fully-qualified type name: "import/path.TypeName"
	TypeName string // Simple type name: "GetWidget"

	// Declaration
	Verb string
	Noun string

	// OutputTypes are deduplicated and ordered by FullName
	OutputTypes []TypeRef

	// Parameters in declaration order
	Parameters []*Parameter
}

// Name returns the command name of the form verb-noun
func (c *Command) Name() string {
	return c.Verb + "-" + c.Noun
}

// ParameterSetNames returns the distinct parameter set names used by the
// command's parameters, sorted ordinally. The AllParameterSets sentinel is
// included when any parameter binds to it.
func (c *Command) ParameterSetNames() []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, p := range c.Parameters {
		for _, set := range p.SetNames() {
			if seen[set] {
				continue
			}
			seen[set] = true
			names = append(names, set)
		}
	}
	sort.Strings(names)
	return names
}

// ParametersFor returns the parameters belonging to the given set, in
// declaration order. For AllParameterSets every parameter is returned.
func (c *Command) ParametersFor(set string) []*Parameter {
	if set == AllParameterSets {
		return append([]*Parameter(nil), c.Parameters...)
	}
	result := []*Parameter{}
	for _, p := range c.Parameters {
		if p.InSet(set) || p.InSet(AllParameterSets) {
			result = append(result, p)
		}
	}
	return result
}

// PipelineParameters returns parameters accepting pipeline input in any set
func (c *Command) PipelineParameters() []*Parameter {
	result := []*Parameter{}
	for _, p := range c.Parameters {
		for _, b := range p.Bindings {
			if b.Pipeline() {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// SetBinding is the per-parameter-set binding descriptor of a parameter
type SetBinding struct {
	Set                    string
	Required               bool
	Position               int // Named when non-positional
	PipelineByValue        bool
	PipelineByPropertyName bool
}

// Pipeline reports whether the binding accepts pipeline input at all
func (b SetBinding) Pipeline() bool {
	return b.PipelineByValue || b.PipelineByPropertyName
}

// Positional reports whether the binding has an explicit position
func (b SetBinding) Positional() bool {
	return b.Position >= 0
}

// Parameter represents a bindable member of a command
type Parameter struct {
	Name       string
	Type       TypeRef
	Aliases    []string
	EnumValues []string
	Globbing   bool
	Bindings   []SetBinding
}

// SetNames returns the set names of the parameter's bindings in declaration order
func (p *Parameter) SetNames() []string {
	names := make([]string, 0, len(p.Bindings))
	for _, b := range p.Bindings {
		names = append(names, b.Set)
	}
	return names
}

// InSet reports whether the parameter declares a binding for the set
func (p *Parameter) InSet(set string) bool {
	for _, b := range p.Bindings {
		if b.Set == set {
			return true
		}
	}
	return false
}

// Binding resolves the descriptor for a set: the set-specific entry first,
// then the AllParameterSets entry. Asking for AllParameterSets on a
// parameter that only names concrete sets yields its first binding.
func (p *Parameter) Binding(set string) SetBinding {
	var fallback *SetBinding
	for i := range p.Bindings {
		b := &p.Bindings[i]
		if b.Set == set {
			return *b
		}
		if b.Set == AllParameterSets && fallback == nil {
			fallback = b
		}
	}
	if fallback != nil {
		return *fallback
	}
	if set == AllParameterSets && len(p.Bindings) > 0 {
		return p.Bindings[0]
	}
	return SetBinding{Set: set, Position: Named}
}

// IsEnum reports whether the parameter's type is an enumeration
func (p *Parameter) IsEnum() bool {
	return len(p.EnumValues) > 0
}
