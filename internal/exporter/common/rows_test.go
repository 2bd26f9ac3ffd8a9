package common

import (
	"reflect"
	"testing"

	"mamlgen/internal/maml"
	"mamlgen/internal/model"
)

func sampleDoc() *maml.Document {
	name := maml.ParameterHelp{Name: "Name", Type: "string[]", Required: true, Position: "0"}
	force := maml.ParameterHelp{Name: "Force", Type: "bool", Position: "named"}
	id := maml.ParameterHelp{Name: "Id", Type: "int", Required: true, Position: "named"}

	return &maml.Document{Commands: []maml.CommandHelp{
		{
			Name:       "Get-Widget",
			Documented: true,
			Parameters: []maml.ParameterHelp{name, id, force},
			Syntax: []maml.SyntaxHelp{
				{Set: "ById", Parameters: []maml.ParameterHelp{id, force}},
				{Set: "ByName", Parameters: []maml.ParameterHelp{name, force}},
			},
		},
		{
			Name:   "Clear-Widget",
			Syntax: []maml.SyntaxHelp{{Set: model.AllParameterSets}},
		},
	}}
}

func TestFlattenParameters(t *testing.T) {
	rows := FlattenParameters(sampleDoc())
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0].Set != "ById" || rows[0].Parameter.Name != "Id" {
		t.Errorf("first row = %+v", rows[0])
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleDoc())
	want := Summary{Commands: 2, Documented: 1, Undocumented: 1, Parameters: 3, Sets: 3}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSetNamesHidesSentinel(t *testing.T) {
	doc := sampleDoc()
	if got := SetNames(doc.Commands[0]); !reflect.DeepEqual(got, []string{"ById", "ByName"}) {
		t.Errorf("SetNames = %v", got)
	}
	if got := SetNames(doc.Commands[1]); len(got) != 0 {
		t.Errorf("SetNames = %v, want none", got)
	}
}

func TestSyntaxLine(t *testing.T) {
	doc := sampleDoc()
	tests := []struct {
		item maml.SyntaxHelp
		want string
	}{
		{doc.Commands[0].Syntax[0], "Get-Widget -Id <int> [-Force]"},
		{doc.Commands[0].Syntax[1], "Get-Widget [-Name] <string[]> [-Force]"},
		{doc.Commands[1].Syntax[0], "Clear-Widget"},
	}
	for _, tt := range tests {
		cmd := "Get-Widget"
		if tt.item.Set == model.AllParameterSets {
			cmd = "Clear-Widget"
		}
		if got := SyntaxLine(cmd, tt.item); got != tt.want {
			t.Errorf("SyntaxLine = %q, want %q", got, tt.want)
		}
	}
}
