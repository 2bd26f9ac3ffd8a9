package word

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"mamlgen/internal/exporter/common"
	"mamlgen/internal/maml"

	"github.com/nguyenthenguyen/docx"
)

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Format() string { return "docx" }

func (e *WordExporter) Export(doc *maml.Document, path string) error {
	tmpl, err := reportTemplate()
	if err != nil {
		return fmt.Errorf("failed to build report template: %w", err)
	}

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(tmpl), int64(len(tmpl)))
	if err != nil {
		return fmt.Errorf("failed to read report template: %w", err)
	}
	defer r.Close()

	d := r.Editable()

	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	if err := d.Replace(PlaceholderTitle, base+" Command Reference", -1); err != nil {
		return err
	}
	if err := d.Replace(PlaceholderCommands, fmt.Sprintf("%d", len(doc.Commands)), -1); err != nil {
		return err
	}
	// The library handles XML encoding and line breaks
	if err := d.Replace(PlaceholderContent, Content(doc), -1); err != nil {
		return err
	}

	if err := d.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

// Content renders the plain-text body of the report
func Content(doc *maml.Document) string {
	var sb strings.Builder
	for i, cmd := range doc.Commands {
		buildCommandText(&sb, cmd)
		if i < len(doc.Commands)-1 {
			sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
	}
	return sb.String()
}

// buildCommandText builds plain text documentation for a single command
func buildCommandText(sb *strings.Builder, cmd maml.CommandHelp) {
	sb.WriteString(cmd.Name + "\n")
	sb.WriteString(fmt.Sprintf("Type: %s\n\n", cmd.TypeName))

	if len(cmd.Synopsis) > 0 {
		sb.WriteString("SYNOPSIS\n")
		sb.WriteString(common.Paragraphs(cmd.Synopsis) + "\n\n")
	}

	sb.WriteString("SYNTAX\n")
	for _, item := range cmd.Syntax {
		sb.WriteString("  " + common.SyntaxLine(cmd.Name, item) + "\n")
	}
	sb.WriteString("\n")

	if len(cmd.Description) > 0 {
		sb.WriteString("DESCRIPTION\n")
		sb.WriteString(common.Paragraphs(cmd.Description) + "\n\n")
	}

	if len(cmd.Parameters) > 0 {
		sb.WriteString("PARAMETERS\n")
		sb.WriteString(fmt.Sprintf("%-25s %-20s %-10s %-10s %s\n", "Name", "Type", "Required", "Position", "Pipeline Input"))
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, p := range cmd.Parameters {
			required := "No"
			if p.Required {
				required = "Yes"
			}
			sb.WriteString(fmt.Sprintf("%-25s %-20s %-10s %-10s %s\n",
				truncate("-"+p.Name, 25),
				truncate(p.Type, 20),
				required,
				p.Position,
				p.PipelineInput))
			for _, para := range p.Description {
				sb.WriteString("    " + para + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(cmd.Inputs) > 0 {
		sb.WriteString("INPUTS\n  " + strings.Join(cmd.Inputs, ", ") + "\n\n")
	}
	if len(cmd.Outputs) > 0 {
		sb.WriteString("OUTPUTS\n  " + strings.Join(cmd.Outputs, ", ") + "\n")
	}
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
