package xmldoc

import (
	"bytes"
	"context"
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"mamlgen/internal/xmltree"
)

func parseDocumented(t *testing.T) *doc.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Join("testdata", "documented", "documented.go"), nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	dp, err := doc.NewFromFiles(fset, []*ast.File{f}, "example.com/documented")
	if err != nil {
		t.Fatalf("NewFromFiles failed: %v", err)
	}
	return dp
}

func TestDocumentRoundTrip(t *testing.T) {
	root := Document("documented", "example.com/documented", parseDocumented(t))

	var buf bytes.Buffer
	if err := xmltree.Write(&buf, root); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	idx, err := ParseReader(&buf, "generated.xml")
	if err != nil {
		t.Fatalf("Generated file does not parse: %v", err)
	}
	if idx.AssemblyName() != "documented" {
		t.Errorf("AssemblyName = %q", idx.AssemblyName())
	}

	get := idx.Type("example.com/documented.GetThing")
	if get == nil {
		t.Fatal("GetThing entry missing")
	}
	if got := xmltree.PlainText(get.Summary); got != "GetThing gets things." {
		t.Errorf("Summary = %q", got)
	}

	var paras []string
	for _, n := range get.Remarks {
		if el, ok := n.(*xmltree.Element); ok {
			paras = append(paras, el.InnerText())
		}
	}
	want := []string{"Things are looked up by name.", "Wildcards are allowed."}
	if strings.Join(paras, "|") != strings.Join(want, "|") {
		t.Errorf("Remarks paras = %q, want %q", paras, want)
	}

	tests := []struct {
		member string
		want   string
	}{
		{"Name", "Name of the thing."},
		{"Limit", "Maximum number of results."},
		{"Force", "Force skips confirmation."}, // promoted from Shared
	}
	for _, tt := range tests {
		p := get.Property(tt.member)
		if p == nil {
			t.Errorf("Property %s missing", tt.member)
			continue
		}
		if got := xmltree.PlainText(p.Summary); got != tt.want {
			t.Errorf("Property %s summary = %q, want %q", tt.member, got, tt.want)
		}
	}
	if get.Property("hidden") != nil {
		t.Error("Unexported field should not be documented")
	}

	bare := idx.Type("example.com/documented.Bare")
	if bare == nil {
		t.Fatal("Bare entry missing")
	}
	if bare.Summary != nil {
		t.Error("Undocumented type should have no summary element")
	}
}

func TestParagraphs(t *testing.T) {
	got := paragraphs("First line\ncontinues.\n\n\nSecond.\n")
	if len(got) != 2 || got[0] != "First line continues." || got[1] != "Second." {
		t.Errorf("paragraphs = %q", got)
	}
	if len(paragraphs("")) != 0 {
		t.Error("Empty text should have no paragraphs")
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(context.Background(), filepath.Join("testdata", "documented"), &buf); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, xmltree.Declaration) {
		t.Errorf("Output should start with the XML declaration: %q", out)
	}
	if !strings.Contains(out, `/documented.GetThing.Name"`) {
		t.Errorf("Output missing GetThing.Name member:\n%s", out)
	}
}
