package xmldoc

import (
	"context"
	"fmt"
	"go/ast"
	"go/doc"
	"io"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"

	"mamlgen/internal/logger"
	"mamlgen/internal/xmltree"
)

// Generate writes a documentation file for the Go package matched by pattern.
// Every exported type gets a T: member and every exported struct field a P:
// member; fields promoted from embedded structs of the same package are
// documented under the embedding type too. The first paragraph of a doc
// comment becomes the summary, the remaining paragraphs the remarks.
func Generate(ctx context.Context, pattern string, w io.Writer) error {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		cfg.Dir = pattern
		pattern = "."
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return fmt.Errorf("failed to load package %s: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("pattern %s matches %d packages, want exactly one", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		logger.Debug("Package load problem", "package", pkg.PkgPath, "err", e.Msg)
	}
	if len(pkg.Syntax) == 0 {
		return fmt.Errorf("package %s has no parsable Go files", pattern)
	}

	dp, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath)
	if err != nil {
		return fmt.Errorf("failed to read doc comments of %s: %w", pkg.PkgPath, err)
	}

	root := Document(pkg.Name, pkg.PkgPath, dp)
	return xmltree.Write(w, root)
}

// Document builds the documentation tree for an already parsed package
func Document(assembly, importPath string, dp *doc.Package) *xmltree.Element {
	structs := make(map[string]*ast.StructType)
	for _, t := range dp.Types {
		if st := structOf(t); st != nil {
			structs[t.Name] = st
		}
	}

	members := xmltree.NewElement("members")
	for _, t := range dp.Types {
		typeName := importPath + "." + t.Name
		members.Add(member("T:"+typeName, t.Doc))

		st := structs[t.Name]
		if st == nil {
			continue
		}
		for _, f := range fieldDocs(st, structs, make(map[string]bool)) {
			members.Add(member("P:"+typeName+"."+f.name, f.text))
		}
	}

	return xmltree.NewElement("doc",
		xmltree.NewElement("assembly", xmltree.TextElement("name", assembly)),
		members,
	)
}

type fieldDoc struct {
	name string
	text string
}

// fieldDocs lists the exported fields of st in declaration order, descending
// into embedded structs declared in the same package
func fieldDocs(st *ast.StructType, structs map[string]*ast.StructType, visiting map[string]bool) []fieldDoc {
	var result []fieldDoc
	for _, field := range st.Fields.List {
		text := field.Doc.Text()
		if text == "" {
			text = field.Comment.Text()
		}

		if len(field.Names) == 0 {
			name := embeddedName(field.Type)
			if inner, ok := structs[name]; ok && !visiting[name] {
				visiting[name] = true
				result = append(result, fieldDocs(inner, structs, visiting)...)
				delete(visiting, name)
			}
			continue
		}

		for _, n := range field.Names {
			if n.IsExported() {
				result = append(result, fieldDoc{name: n.Name, text: text})
			}
		}
	}
	return result
}

func embeddedName(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.StarExpr:
		return embeddedName(v.X)
	}
	return ""
}

func structOf(t *doc.Type) *ast.StructType {
	for _, spec := range t.Decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok || ts.Name.Name != t.Name {
			continue
		}
		st, _ := ts.Type.(*ast.StructType)
		return st
	}
	return nil
}

// member renders one <member> element; the first paragraph is the summary
func member(name, text string) *xmltree.Element {
	m := xmltree.NewElement("member")
	m.SetAttr("name", name)

	paras := paragraphs(text)
	if len(paras) == 0 {
		return m
	}
	m.Add(xmltree.TextElement("summary", paras[0]))
	if len(paras) > 1 {
		remarks := xmltree.NewElement("remarks")
		for _, p := range paras[1:] {
			remarks.Add(xmltree.TextElement("para", p))
		}
		m.Add(remarks)
	}
	return m
}

// paragraphs splits doc text on blank lines, joining the lines of each block
func paragraphs(text string) []string {
	var (
		result  []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			result = append(result, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return result
}
