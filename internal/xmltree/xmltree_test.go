package xmltree

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteIndentsElementContent(t *testing.T) {
	root := NewElement("helpItems",
		Comment(" Command:  Get-Widget "),
		NewElement("command:command",
			TextElement("maml:name", "Get-Widget"),
			NewElement("maml:description"),
		),
	)
	root.SetAttr("schema", "maml")

	var sb strings.Builder
	if err := Write(&sb, root); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := `<?xml version="1.0" encoding="utf-8"?>
<helpItems schema="maml">
  <!-- Command:  Get-Widget -->
  <command:command>
    <maml:name>Get-Widget</maml:name>
    <maml:description />
  </command:command>
</helpItems>
`
	if sb.String() != want {
		t.Errorf("Write output:\n%s\nwant:\n%s", sb.String(), want)
	}
}

// body writes el as a document and strips the declaration line
func body(t *testing.T, el *Element) string {
	t.Helper()
	var sb strings.Builder
	if err := Write(&sb, el); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return strings.TrimPrefix(sb.String(), Declaration+"\n")
}

func TestWriteEscaping(t *testing.T) {
	el := NewElement("p", Text(`a < b & "c"`), NewElement("b", Text("x>y")))
	el.SetAttr("title", "say \"hi\"\n& <bye>")

	want := `<p title="say &quot;hi&quot;&#xA;&amp; &lt;bye&gt;">a &lt; b &amp; "c"<b>x&gt;y</b></p>` + "\n"
	if got := body(t, el); got != want {
		t.Errorf("Write = %s\nwant %s", got, want)
	}
}

func TestWriteCommentSanitized(t *testing.T) {
	if got := body(t, NewElement("x", Comment("a--b-"))); got != "<x>\n  <!--a- -b- -->\n</x>\n" {
		t.Errorf("comment = %q", got)
	}
}

func TestParseKeepsOrderAndText(t *testing.T) {
	input := `<?xml version="1.0"?>
<!-- dropped -->
<doc a="1" b="2">
  <summary>Gets <see cref="T:X"/> widgets.</summary>
  <para>one</para>
</doc>`

	root, err := Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Name != "doc" || len(root.Attrs) != 2 || root.Attrs[0].Name != "a" || root.Attrs[1].Name != "b" {
		t.Errorf("Unexpected root: %+v", root)
	}

	summary := root.Element("summary")
	if summary == nil || len(summary.Children) != 3 {
		t.Fatalf("summary children = %+v", summary)
	}
	if cref, _ := summary.Children[1].(*Element).Attr("cref"); cref != "T:X" {
		t.Errorf("cref = %q", cref)
	}
	if got := PlainText(summary.Children); got != "Gets widgets." {
		t.Errorf("PlainText = %q", got)
	}
	if got := root.Path("para").InnerText(); got != "one" {
		t.Errorf("InnerText = %q", got)
	}
	if root.Path("summary", "missing", "deeper") != nil {
		t.Error("Path through a missing element should be nil")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("   "), nil); !errors.Is(err, ErrNoRoot) {
		t.Errorf("empty input: err = %v, want ErrNoRoot", err)
	}
	if _, err := Parse(strings.NewReader("<a><b></a>"), nil); err == nil {
		t.Error("mismatched tags: expected error")
	}
}

func TestAddSkipsNil(t *testing.T) {
	var missing *Element
	el := NewElement("x", nil, missing, Text("t"))
	if len(el.Children) != 1 {
		t.Errorf("children = %d, want 1", len(el.Children))
	}
}

func TestSetAttrReplacesInPlace(t *testing.T) {
	el := NewElement("x").SetAttr("a", "1").SetAttr("b", "2").SetAttr("a", "3")
	if len(el.Attrs) != 2 || el.Attrs[0] != (Attr{Name: "a", Value: "3"}) {
		t.Errorf("Attrs = %+v", el.Attrs)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewElement("a", NewElement("b", Text("x")))
	c := orig.Clone()
	c.Element("b").Children[0] = Text("y")
	c.SetAttr("k", "v")

	if orig.Element("b").InnerText() != "x" || len(orig.Attrs) != 0 {
		t.Error("Clone shares state with the original")
	}
	if (*Element)(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestTextIsBlank(t *testing.T) {
	if !Text(" \n\t").IsBlank() || Text(" a ").IsBlank() {
		t.Error("IsBlank mismatch")
	}
}
