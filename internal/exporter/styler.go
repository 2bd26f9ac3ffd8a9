package exporter

import (
	"github.com/xuri/excelize/v2"
)

// Styler holds the cell styles registered on a workbook
type Styler struct {
	File *excelize.File

	HeaderStyle       int
	CommandStyle      int
	RequiredStyle     int
	UndocumentedStyle int
	DefaultStyle      int
}

// NewStyler registers the reference styles on f
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}

	middle := &excelize.Alignment{Vertical: "center"}
	wrapped := &excelize.Alignment{Vertical: "center", WrapText: true}

	styles := []struct {
		id    *int
		style *excelize.Style
	}{
		{&s.HeaderStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#000000"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		// command names
		{&s.CommandStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
			Alignment: middle,
		}},
		// mandatory parameters
		{&s.RequiredStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#D32F2F"},
			Alignment: wrapped,
		}},
		// commands without a doc entry
		{&s.UndocumentedStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#757575", Italic: true},
			Alignment: middle,
		}},
		{&s.DefaultStyle, &excelize.Style{Alignment: wrapped}},
	}

	for _, st := range styles {
		st.style.Border = cellBorder()
		id, err := f.NewStyle(st.style)
		if err != nil {
			return nil, err
		}
		*st.id = id
	}

	return s, nil
}

func cellBorder() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "top", "bottom", "right"} {
		borders = append(borders, excelize.Border{Type: side, Color: "D4D4D4", Style: 1})
	}
	return borders
}
