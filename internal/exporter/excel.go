package exporter

import (
	"fmt"
	"strings"

	"mamlgen/internal/exporter/common"
	"mamlgen/internal/maml"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook
const (
	SheetOverview   = "Overview"
	SheetCommands   = "Commands"
	SheetParameters = "Parameters"
)

// ExcelExporter writes a command reference workbook
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Format implements Exporter
func (e *ExcelExporter) Format() string { return "xlsx" }

// Export generates the workbook at path
func (e *ExcelExporter) Export(doc *maml.Document, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, doc); err != nil {
		return err
	}
	if err := e.writeCommands(f, styler, doc); err != nil {
		return err
	}
	if err := e.writeParameters(f, styler, doc); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, doc *maml.Document) error {
	sheet := SheetOverview
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Count"}, s.HeaderStyle)
	row++

	summary := common.Summarize(doc)
	metrics := []struct {
		Key string
		Val int
	}{
		{"Total Commands", summary.Commands},
		{"Documented Commands", summary.Documented},
		{"Undocumented Commands", summary.Undocumented},
		{"Total Parameters", summary.Parameters},
		{"Total Syntax Items", summary.Sets},
	}
	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 30)
	return nil
}

// --- Commands Sheet Logic ---

func (e *ExcelExporter) writeCommands(f *excelize.File, s *Styler, doc *maml.Document) error {
	sheet := SheetCommands
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"No", "Command", "Type", "Synopsis", "Parameter Sets", "Inputs", "Outputs"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)
	freezeHeader(f, sheet)

	for i, cmd := range doc.Commands {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cmd.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), cmd.TypeName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), common.Paragraphs(cmd.Synopsis))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), strings.Join(common.SetNames(cmd), ", "))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), strings.Join(cmd.Inputs, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), strings.Join(cmd.Outputs, ", "))

		style := s.CommandStyle
		if !cmd.Documented {
			style = s.UndocumentedStyle
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), style)
	}

	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "D", 60)
	f.SetColWidth(sheet, "E", "G", 25)
	return nil
}

// --- Parameters Sheet Logic ---

func (e *ExcelExporter) writeParameters(f *excelize.File, s *Styler, doc *maml.Document) error {
	sheet := SheetParameters
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Command", "Parameter Set", "Parameter", "Type", "Required", "Position", "Pipeline Input", "Aliases", "Description"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)
	freezeHeader(f, sheet)

	for i, r := range common.FlattenParameters(doc) {
		row := i + 2
		p := r.Parameter
		values := []interface{}{
			r.Command,
			r.Set,
			p.Name,
			p.Type,
			yesNo(p.Required),
			p.Position,
			p.PipelineInput,
			strings.Join(p.Aliases, ", "),
			common.Paragraphs(p.Description),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}

		style := s.DefaultStyle
		if p.Required {
			style = s.RequiredStyle
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), style)
	}

	f.SetColWidth(sheet, "A", "C", 25)
	f.SetColWidth(sheet, "G", "G", 30)
	f.SetColWidth(sheet, "I", "I", 60)
	return nil
}

func freezeHeader(f *excelize.File, sheet string) {
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
