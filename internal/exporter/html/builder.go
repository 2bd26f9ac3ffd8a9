package html

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"mamlgen/internal/exporter/common"
	"mamlgen/internal/maml"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// CommandReferenceData is the template input
type CommandReferenceData struct {
	Title    string
	Summary  common.Summary
	Commands []maml.CommandHelp
}

var referenceTemplate = template.Must(template.New("command-reference").Funcs(template.FuncMap{
	"join":       strings.Join,
	"setName":    common.DisplaySet,
	"syntaxLine": common.SyntaxLine,
}).Parse(CommandReferenceTemplate))

func (e *HTMLExporter) Format() string { return "html" }

func (e *HTMLExporter) Export(doc *maml.Document, path string) error {
	data := CommandReferenceData{
		Title:    title(path),
		Summary:  common.Summarize(doc),
		Commands: doc.Commands,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := referenceTemplate.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// title strips directory and extensions: out/Widgets.dll-help.html -> Widgets
func title(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
