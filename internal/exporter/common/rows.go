package common

import (
	"strings"

	"mamlgen/internal/maml"
	"mamlgen/internal/model"
)

// ParameterRow is one parameter of one syntax item, flattened for tabular output
type ParameterRow struct {
	Command   string
	Set       string
	Parameter maml.ParameterHelp
}

// FlattenParameters lists every parameter of every syntax item in document
// order. Parameters of the all-sets sentinel are reported with an empty Set.
func FlattenParameters(doc *maml.Document) []ParameterRow {
	var rows []ParameterRow
	for _, cmd := range doc.Commands {
		for _, item := range cmd.Syntax {
			for _, p := range item.Parameters {
				rows = append(rows, ParameterRow{Command: cmd.Name, Set: DisplaySet(item.Set), Parameter: p})
			}
		}
	}
	return rows
}

// DisplaySet hides the all-sets sentinel name
func DisplaySet(set string) string {
	if set == model.AllParameterSets {
		return ""
	}
	return set
}

// SetNames lists the displayable parameter set names of a command
func SetNames(cmd maml.CommandHelp) []string {
	var names []string
	for _, item := range cmd.Syntax {
		if name := DisplaySet(item.Set); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Summary holds document-wide counts
type Summary struct {
	Commands     int
	Documented   int
	Undocumented int
	Parameters   int
	Sets         int
}

// Summarize counts commands, distinct parameters and parameter sets
func Summarize(doc *maml.Document) Summary {
	var s Summary
	for _, cmd := range doc.Commands {
		s.Commands++
		if cmd.Documented {
			s.Documented++
		} else {
			s.Undocumented++
		}
		s.Parameters += len(cmd.Parameters)
		s.Sets += len(cmd.Syntax)
	}
	return s
}

// Paragraphs joins description paragraphs with blank lines
func Paragraphs(paras []string) string {
	return strings.Join(paras, "\n\n")
}

// SyntaxLine renders a one-line usage string for a syntax item, e.g.
// "Get-Widget [-Name] <string[]> [-Force]"
func SyntaxLine(command string, item maml.SyntaxHelp) string {
	var sb strings.Builder
	sb.WriteString(command)
	for _, p := range item.Parameters {
		sb.WriteByte(' ')
		sb.WriteString(parameterUsage(p))
	}
	return sb.String()
}

func parameterUsage(p maml.ParameterHelp) string {
	name := "-" + p.Name
	if p.Position != "named" {
		name = "[" + name + "]"
	}
	usage := name
	if p.Type != "bool" {
		usage += " <" + p.Type + ">"
	}
	if !p.Required {
		usage = "[" + usage + "]"
	}
	return usage
}
