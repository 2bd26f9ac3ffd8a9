package xmldoc

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"mamlgen/internal/xmltree"
)

const sampleDoc = `<?xml version="1.0"?>
<doc>
  <assembly><name>Widgets</name></assembly>
  <members>
    <member name="T:Widgets.GetWidget">
      <summary>Gets widgets.</summary>
      <remarks>
        Looks widgets up.
        <para>Second paragraph.</para>
        <see cref="T:Widgets.Widget"/>
        <code>dropped</code>
      </remarks>
    </member>
    <member name="P:Widgets.GetWidget.Name">
      <summary>The widget name.</summary>
    </member>
    <member name="P:Widgets.GetWidget.Id"><remarks/></member>
    <member name="M:Widgets.GetWidget.ProcessRecord">
      <summary>Ignored.</summary>
    </member>
    <member name="F:Widgets.Color.Red"/>
  </members>
</doc>`

func TestParseReaderIndexesTypesAndProperties(t *testing.T) {
	idx, err := ParseReader(strings.NewReader(sampleDoc), "sample.xml")
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if idx.AssemblyName() != "Widgets" {
		t.Errorf("AssemblyName = %q, want Widgets", idx.AssemblyName())
	}
	if idx.Len() != 3 {
		t.Errorf("Len = %d, want 3 (method and field members ignored)", idx.Len())
	}

	typ := idx.Type("Widgets.GetWidget")
	if typ == nil {
		t.Fatal("Type entry not found")
	}
	if typ.Kind != TypeEntry {
		t.Errorf("Kind = %v, want TypeEntry", typ.Kind)
	}
	if got := xmltree.PlainText(typ.Summary); got != "Gets widgets." {
		t.Errorf("Summary = %q", got)
	}

	// text nodes and para survive, see and code are dropped
	var paras, texts int
	for _, n := range typ.Remarks {
		switch v := n.(type) {
		case *xmltree.Element:
			if v.Name != "para" {
				t.Errorf("Unexpected element %q kept in remarks", v.Name)
			}
			paras++
		case xmltree.Text:
			texts++
		}
	}
	if paras != 1 || texts == 0 {
		t.Errorf("Remarks kept %d paras and %d text nodes", paras, texts)
	}

	name := typ.Property("Name")
	if name == nil || name.TypeName != "Widgets.GetWidget" || name.MemberName != "Name" {
		t.Fatalf("Property(Name) = %+v", name)
	}
	if name.Remarks != nil {
		t.Error("Absent remarks should be nil")
	}

	id := idx.Property("Widgets.GetWidget.Id")
	if id == nil {
		t.Fatal("Id property not found")
	}
	if id.Summary != nil {
		t.Error("Absent summary should be nil")
	}
	if id.Remarks == nil || len(id.Remarks) != 0 {
		t.Errorf("Empty remarks should be non-nil and empty, got %#v", id.Remarks)
	}

	props := idx.PropertiesOf("Widgets.GetWidget")
	if len(props) != 2 || props[0].MemberName != "Id" || props[1].MemberName != "Name" {
		t.Errorf("PropertiesOf not sorted by member name: %+v", props)
	}
}

func TestMissingEntriesAreNil(t *testing.T) {
	idx, err := ParseReader(strings.NewReader(sampleDoc), "sample.xml")
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if idx.Type("Widgets.Nope") != nil {
		t.Error("Unknown type should be nil")
	}
	if idx.Type("Widgets.GetWidget").Property("Nope") != nil {
		t.Error("Unknown property should be nil")
	}

	var empty *Index
	if empty.Type("x") != nil || empty.Property("x.y") != nil || empty.PropertiesOf("x") != nil {
		t.Error("nil index should behave as empty")
	}
	if empty.AssemblyName() != "" || empty.Len() != 0 {
		t.Error("nil index should have no assembly and no entries")
	}
	var noEntry *Entry
	if noEntry.Property("x") != nil {
		t.Error("nil entry should have no properties")
	}
}

func TestParseReaderFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"wrong root", `<docs><assembly><name>A</name></assembly><members/></docs>`, "missing doc root"},
		{"no assembly name", `<doc><assembly/><members/></doc>`, "assembly/name"},
		{"no members", `<doc><assembly><name>A</name></assembly></doc>`, "doc/members"},
		{"member without name", `<doc><assembly><name>A</name></assembly><members><member/></members></doc>`, "without a name"},
		{"property without type", `<doc><assembly><name>A</name></assembly><members><member name="P:Name"/></members></doc>`, "no owning type"},
		{"malformed xml", `<doc><assembly>`, "malformed XML"},
		{"empty input", ``, "malformed XML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.input), "bad.xml")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrDocFormat) {
				t.Errorf("errors.Is(err, ErrDocFormat) = false for %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xml"))
	if !errors.Is(err, ErrDocFormat) {
		t.Errorf("Expected ErrDocFormat, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected the cause to be fs.ErrNotExist, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Widgets.xml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}
	idx, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if idx.Type("Widgets.GetWidget") == nil {
		t.Error("Type entry not found")
	}
}

func TestParseReaderEncodings(t *testing.T) {
	body := `<doc><assembly><name>Café</name></assembly><members/></doc>`

	latin1, err := charmap.ISO8859_1.NewEncoder().String(`<?xml version="1.0" encoding="ISO-8859-1"?>` + body)
	if err != nil {
		t.Fatal(err)
	}

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(
		`<?xml version="1.0" encoding="utf-16"?>` + body)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, body...)},
		{"latin-1 declared", []byte(latin1)},
		{"utf-16 bom", []byte(utf16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ParseReader(bytes.NewReader(tt.input), tt.name)
			if err != nil {
				t.Fatalf("ParseReader failed: %v", err)
			}
			if idx.AssemblyName() != "Café" {
				t.Errorf("AssemblyName = %q, want Café", idx.AssemblyName())
			}
		})
	}
}

func TestDuplicateMemberKeepsLast(t *testing.T) {
	input := `<doc><assembly><name>A</name></assembly><members>
<member name="T:A.X"><summary>first</summary></member>
<member name="T:A.X"><summary>second</summary></member>
</members></doc>`
	idx, err := ParseReader(strings.NewReader(input), "dup.xml")
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if got := xmltree.PlainText(idx.Type("A.X").Summary); got != "second" {
		t.Errorf("Summary = %q, want second", got)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestBlankMemberNameIsIgnored(t *testing.T) {
	input := `<doc><assembly><name>A</name></assembly><members>
<member name=" "><summary>blank</summary></member>
<member name="T:A.X"><summary>x</summary></member>
</members></doc>`
	idx, err := ParseReader(strings.NewReader(input), "blank.xml")
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if idx.Len() != 1 || idx.Type("A.X") == nil {
		t.Errorf("Len() = %d, want only T:A.X indexed", idx.Len())
	}
}
