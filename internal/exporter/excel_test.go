package exporter

import (
	"path/filepath"
	"testing"

	"mamlgen/internal/maml"
	"mamlgen/internal/model"

	"github.com/xuri/excelize/v2"
)

func sampleDoc() *maml.Document {
	name := maml.ParameterHelp{
		Name: "Name", Type: "string[]", Required: true, Position: "0",
		PipelineInput: "true (ByValue)", Aliases: []string{"N"},
		Description: []string{"Names of the widgets."},
	}
	force := maml.ParameterHelp{Name: "Force", Type: "bool", Position: "named", PipelineInput: "false"}

	doc := maml.Build(nil, nil, maml.Options{})
	doc.Commands = []maml.CommandHelp{
		{
			Name: "Get-Widget", Verb: "Get", Noun: "Widget", TypeName: "widgets.GetWidget",
			Documented: true,
			Synopsis:   []string{"Gets widgets."},
			Parameters: []maml.ParameterHelp{name, force},
			Syntax:     []maml.SyntaxHelp{{Set: model.AllParameterSets, Parameters: []maml.ParameterHelp{name, force}}},
			Inputs:     []string{"string[]"},
			Outputs:    []string{"Widget"},
		},
		{
			Name: "Clear-Widget", Verb: "Clear", Noun: "Widget", TypeName: "widgets.ClearWidget",
			Syntax: []maml.SyntaxHelp{{Set: model.AllParameterSets}},
		},
	}
	return doc
}

func TestExcelExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.dll-help.xlsx")

	if err := NewExcelExporter().Export(sampleDoc(), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetOverview, SheetCommands, SheetParameters}
	if len(sheets) != len(want) {
		t.Fatalf("Sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("Sheet %d = %s, want %s", i, sheets[i], want[i])
		}
	}

	cells := []struct {
		sheet, cell, want string
	}{
		{SheetOverview, "A2", "Total Commands"},
		{SheetOverview, "B2", "2"},
		{SheetOverview, "B4", "1"},
		{SheetCommands, "B2", "Get-Widget"},
		{SheetCommands, "D2", "Gets widgets."},
		{SheetCommands, "E2", ""},
		{SheetCommands, "G2", "Widget"},
		{SheetCommands, "B3", "Clear-Widget"},
		{SheetParameters, "A2", "Get-Widget"},
		{SheetParameters, "C2", "Name"},
		{SheetParameters, "E2", "Yes"},
		{SheetParameters, "G2", "true (ByValue)"},
		{SheetParameters, "H2", "N"},
		{SheetParameters, "C3", "Force"},
		{SheetParameters, "F3", "named"},
	}
	for _, c := range cells {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Errorf("GetCellValue(%s!%s): %v", c.sheet, c.cell, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}

	rows, _ := f.GetRows(SheetParameters)
	if len(rows) != 3 {
		t.Errorf("Parameter rows = %d, want 3 (header + 2)", len(rows))
	}
}

func TestExcelExportBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	if err := NewExcelExporter().Export(sampleDoc(), path); err == nil {
		t.Error("Expected error for an unwritable path")
	}
}
