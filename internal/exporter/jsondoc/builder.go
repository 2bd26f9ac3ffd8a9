package jsondoc

import (
	"encoding/json"
	"os"

	"mamlgen/internal/exporter/common"
	"mamlgen/internal/maml"
)

// Catalog Root Object
type Catalog struct {
	Schema   string    `json:"schema"`
	Commands []Command `json:"commands"`
}

type Command struct {
	Name        string      `json:"name"`
	Verb        string      `json:"verb"`
	Noun        string      `json:"noun"`
	Type        string      `json:"type"`
	Documented  bool        `json:"documented"`
	Synopsis    string      `json:"synopsis,omitempty"`
	Description string      `json:"description,omitempty"`
	Syntax      []Syntax    `json:"syntax"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Inputs      []string    `json:"inputs,omitempty"`
	Outputs     []string    `json:"outputs,omitempty"`
}

type Syntax struct {
	ParameterSet string   `json:"parameterSet,omitempty"` // empty for the all-sets item
	Usage        string   `json:"usage"`
	Parameters   []string `json:"parameters,omitempty"`
}

type Parameter struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Required      bool     `json:"required"`
	Position      string   `json:"position"`
	PipelineInput string   `json:"pipelineInput"`
	Globbing      bool     `json:"globbing,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
	Values        []string `json:"values,omitempty"`
	Description   string   `json:"description,omitempty"`
}

const SchemaVersion = "mamlgen/v1"

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (b *JSONExporter) Format() string { return "json" }

func (b *JSONExporter) Export(doc *maml.Document, path string) error {
	catalog := BuildCatalog(doc)

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(catalog); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// BuildCatalog converts a help document to its JSON form
func BuildCatalog(doc *maml.Document) Catalog {
	catalog := Catalog{Schema: SchemaVersion, Commands: []Command{}}
	for _, cmd := range doc.Commands {
		catalog.Commands = append(catalog.Commands, buildCommand(cmd))
	}
	return catalog
}

func buildCommand(cmd maml.CommandHelp) Command {
	c := Command{
		Name:        cmd.Name,
		Verb:        cmd.Verb,
		Noun:        cmd.Noun,
		Type:        cmd.TypeName,
		Documented:  cmd.Documented,
		Synopsis:    common.Paragraphs(cmd.Synopsis),
		Description: common.Paragraphs(cmd.Description),
		Inputs:      cmd.Inputs,
		Outputs:     cmd.Outputs,
	}

	for _, item := range cmd.Syntax {
		s := Syntax{
			ParameterSet: common.DisplaySet(item.Set),
			Usage:        common.SyntaxLine(cmd.Name, item),
		}
		for _, p := range item.Parameters {
			s.Parameters = append(s.Parameters, p.Name)
		}
		c.Syntax = append(c.Syntax, s)
	}

	for _, p := range cmd.Parameters {
		c.Parameters = append(c.Parameters, Parameter{
			Name:          p.Name,
			Type:          p.Type,
			Required:      p.Required,
			Position:      p.Position,
			PipelineInput: p.PipelineInput,
			Globbing:      p.Globbing,
			Aliases:       p.Aliases,
			Values:        p.EnumValues,
			Description:   common.Paragraphs(p.Description),
		})
	}
	return c
}
