// Package maml builds and writes MAML help documents.
package maml

import (
	"mamlgen/internal/xmltree"
)

// Namespaces bound on the helpItems root
const (
	NamespaceMSH     = "http://msh"
	NamespaceMAML    = "http://schemas.microsoft.com/maml/2004/10"
	NamespaceDev     = "http://schemas.microsoft.com/maml/dev/2004/10"
	NamespaceCommand = "http://schemas.microsoft.com/maml/dev/command/2004/10"
)

// Document is a built help document. Root is the helpItems tree written by
// Emit; Commands carries the same content in structured form for publishers.
// A Document is not modified after Build returns.
type Document struct {
	Root     *xmltree.Element
	Commands []CommandHelp
}

// CommandHelp is the help content of one command
type CommandHelp struct {
	Name     string
	Verb     string
	Noun     string
	TypeName string // fully-qualified

	Documented  bool     // a type entry exists in the doc index
	Synopsis    []string // summary paragraphs
	Description []string // remarks paragraphs

	Syntax     []SyntaxHelp
	Parameters []ParameterHelp // declaration order, all-sets binding
	Inputs     []string        // simplified types of pipeline parameters
	Outputs    []string        // simplified output types
}

// SyntaxHelp is one parameter set of a command with its ordered parameters
type SyntaxHelp struct {
	Set        string
	Parameters []ParameterHelp
}

// ParameterHelp is a parameter as rendered for one parameter set
type ParameterHelp struct {
	Name          string
	Type          string
	Required      bool
	Globbing      bool
	PipelineInput string
	Position      string
	Aliases       []string
	EnumValues    []string
	Description   []string
}
