package jsondoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"mamlgen/internal/maml"
	"mamlgen/internal/model"
)

func TestJSONExport(t *testing.T) {
	color := maml.ParameterHelp{
		Name: "Color", Type: "Color", Position: "named", PipelineInput: "false",
		EnumValues:  []string{"Red", "Green"},
		Description: []string{"Paint.", "Possible values: Red, Green"},
	}
	doc := &maml.Document{Commands: []maml.CommandHelp{
		{
			Name: "Get-Widget", Verb: "Get", Noun: "Widget", TypeName: "widgets.GetWidget",
			Documented: true,
			Synopsis:   []string{"Gets widgets."},
			Parameters: []maml.ParameterHelp{color},
			Syntax:     []maml.SyntaxHelp{{Set: model.AllParameterSets, Parameters: []maml.ParameterHelp{color}}},
		},
	}}

	path := filepath.Join(t.TempDir(), "widgets.dll-help.json")
	if err := NewJSONExporter().Export(doc, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result Catalog
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatal(err)
	}

	if result.Schema != SchemaVersion {
		t.Errorf("Schema = %q", result.Schema)
	}
	if len(result.Commands) != 1 {
		t.Fatalf("Commands = %d, want 1", len(result.Commands))
	}
	cmd := result.Commands[0]
	if cmd.Name != "Get-Widget" || cmd.Synopsis != "Gets widgets." || !cmd.Documented {
		t.Errorf("Unexpected command: %+v", cmd)
	}
	if len(cmd.Syntax) != 1 || cmd.Syntax[0].ParameterSet != "" || cmd.Syntax[0].Usage != "Get-Widget [-Color <Color>]" {
		t.Errorf("Unexpected syntax: %+v", cmd.Syntax)
	}
	if len(cmd.Parameters) != 1 {
		t.Fatalf("Parameters = %d, want 1", len(cmd.Parameters))
	}
	if p := cmd.Parameters[0]; len(p.Values) != 2 || p.Description != "Paint.\n\nPossible values: Red, Green" {
		t.Errorf("Unexpected parameter: %+v", p)
	}
}

func TestEmptyCatalog(t *testing.T) {
	data, err := json.Marshal(BuildCatalog(&maml.Document{}))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"schema":"mamlgen/v1","commands":[]}` {
		t.Errorf("Empty catalog = %s", data)
	}
}
