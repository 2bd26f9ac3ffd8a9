package maml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mamlgen/internal/model"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSaveWritesDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Widgets.dll-help.xml")

	doc := Build([]*model.Command{getWidget()}, parseDocs(t,
		`<member name="P:Widgets.GetWidget.Count"><summary>Number of widgets.</summary></member>`), Options{})
	if err := Save(doc, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != getWidgetGolden {
		t.Errorf("Saved content differs from emitted content:\n%s", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xml")

	err := Save(Build(nil, nil, Options{}), path)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrIO) {
		t.Errorf("errors.Is(err, ErrIO) = false for %v", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Path != path {
		t.Errorf("IOError path mismatch: %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Output file should not exist after a failed save")
	}
}

func TestEmitWriteFailure(t *testing.T) {
	err := Emit(Build([]*model.Command{getWidget()}, nil, Options{}), failingWriter{})
	if !errors.Is(err, ErrIO) {
		t.Errorf("Expected ErrIO, got %v", err)
	}
	if err := Emit(nil, failingWriter{}); !errors.Is(err, ErrIO) {
		t.Errorf("Expected ErrIO for a nil document, got %v", err)
	}
}

func TestSimpleTypeName(t *testing.T) {
	intRef := model.TypeRef{Kind: model.KindInt32, FullName: "int", Name: "int"}
	foo := model.TypeRef{Kind: model.KindNamed, FullName: "example.com/x.Foo", Name: "Foo"}

	tests := []struct {
		name string
		ref  model.TypeRef
		want string
	}{
		{"int array", model.TypeRef{Kind: model.KindArray, Name: "int[]", Elem: &intRef}, "int[]"},
		{"named", foo, "Foo"},
		{"named array", model.TypeRef{Kind: model.KindArray, Name: "Foo[]", Elem: &foo}, "Foo[]"},
		{"object", model.TypeRef{Kind: model.KindObject, Name: "any"}, "object"},
		{"char", model.TypeRef{Kind: model.KindChar, Name: "rune"}, "char"},
		{"short", model.TypeRef{Kind: model.KindInt16, Name: "int16"}, "short"},
		{"ushort", model.TypeRef{Kind: model.KindUint16, Name: "uint16"}, "ushort"},
		{"uint", model.TypeRef{Kind: model.KindUint32, Name: "uint32"}, "uint"},
		{"long", model.TypeRef{Kind: model.KindInt64, Name: "int64"}, "long"},
		{"ulong", model.TypeRef{Kind: model.KindUint64, Name: "uint64"}, "ulong"},
		{"float", model.TypeRef{Kind: model.KindFloat32, Name: "float32"}, "float"},
		{"double", model.TypeRef{Kind: model.KindFloat64, Name: "float64"}, "double"},
		{"byte", model.TypeRef{Kind: model.KindByte, Name: "uint8"}, "byte"},
		{"bool", model.TypeRef{Kind: model.KindBool, Name: "bool"}, "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimpleTypeName(tt.ref); got != tt.want {
				t.Errorf("SimpleTypeName = %q, want %q", got, tt.want)
			}
		})
	}
}
