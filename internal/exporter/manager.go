package exporter

import (
	"strings"

	"mamlgen/internal/exporter/html"
	"mamlgen/internal/exporter/jsondoc"
	"mamlgen/internal/exporter/word"
	"mamlgen/internal/maml"
)

// MAMLExporter writes the MAML document itself
type MAMLExporter struct{}

// Format implements Exporter
func (MAMLExporter) Format() string { return "maml" }

// Export implements Exporter
func (MAMLExporter) Export(doc *maml.Document, path string) error {
	return maml.Save(doc, path)
}

// GetExporters returns the MAML exporter followed by the exporters for the
// requested formats, without duplicates
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{MAMLExporter{}}
	seen := map[string]bool{"maml": true}

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word", "docx":
			exporters = append(exporters, word.NewWordExporter())
		case "json":
			exporters = append(exporters, jsondoc.NewJSONExporter())
		}
	}
	return exporters
}

// OutputPath derives the path of a publisher's file from the MAML output
// path: widgets.dll-help.xml becomes widgets.dll-help.json for json
func OutputPath(mamlPath, format string) string {
	if format == "maml" {
		return mamlPath
	}
	ext := map[string]string{"excel": "xlsx", "word": "docx"}[format]
	if ext == "" {
		ext = format
	}
	return strings.TrimSuffix(mamlPath, ".xml") + "." + ext
}
