package extractor

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Package is a loaded and type-checked command module
type Package struct {
	Dir        string
	ImportPath string
	Name       string
	Fset       *token.FileSet
	Files      []*ast.File
	Types      *types.Package

	// LocalDeps lists imports satisfied from the module directory
	LocalDeps []string
}

// Load reads, parses and type-checks the Go package at modulePath (a
// directory, or a .go file inside it). Dependency resolution is scoped to
// this call.
func Load(modulePath string) (*Package, error) {
	dir, err := moduleDir(modulePath)
	if err != nil {
		return nil, &ModuleLoadError{Path: modulePath, Err: err}
	}

	fset := token.NewFileSet()
	files, name, err := parseDir(fset, dir)
	if err != nil {
		return nil, &ModuleLoadError{Path: modulePath, Err: err}
	}

	importPath := importPathFor(dir, name)

	res := newResolver(dir, fset)
	release := res.acquire()
	defer release()

	pkg, err := check(importPath, fset, files, res)
	if err != nil {
		return nil, &ModuleLoadError{Path: modulePath, Err: err}
	}

	return &Package{
		Dir:        dir,
		ImportPath: importPath,
		Name:       name,
		Fset:       fset,
		Files:      files,
		Types:      pkg,
		LocalDeps:  append([]string(nil), res.Local...),
	}, nil
}

func check(importPath string, fset *token.FileSet, files []*ast.File, imp types.ImporterFrom) (*types.Package, error) {
	var typeErrs []error
	conf := types.Config{
		Importer: imp,
		Error: func(err error) {
			typeErrs = append(typeErrs, err)
		},
	}

	pkg, _ := conf.Check(importPath, fset, files, nil)
	if len(typeErrs) > 0 {
		if len(typeErrs) == 1 {
			return nil, typeErrs[0]
		}
		return nil, fmt.Errorf("%w (and %d more errors)", typeErrs[0], len(typeErrs)-1)
	}
	return pkg, nil
}

func moduleDir(modulePath string) (string, error) {
	if strings.TrimSpace(modulePath) == "" {
		return "", errors.New("module path is empty")
	}
	info, err := os.Stat(modulePath)
	if err != nil {
		return "", err
	}
	dir := modulePath
	if !info.IsDir() {
		if filepath.Ext(modulePath) != ".go" {
			return "", fmt.Errorf("%s is neither a directory nor a Go source file", modulePath)
		}
		dir = filepath.Dir(modulePath)
	}
	return filepath.Abs(dir)
}

// parseDir parses the non-test Go files of dir that match the current build
// context. It returns the files (sorted by name) and the package name.
func parseDir(fset *token.FileSet, dir string) ([]*ast.File, string, error) {
	bp, err := build.Default.ImportDir(dir, 0)
	if err != nil {
		var noGo *build.NoGoError
		if errors.As(err, &noGo) {
			return nil, "", fmt.Errorf("no Go files in %s", dir)
		}
		return nil, "", err
	}

	files := make([]*ast.File, 0, len(bp.GoFiles))
	for _, name := range bp.GoFiles {
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, "", err
		}
		files = append(files, f)
	}
	return files, bp.Name, nil
}

// importPathFor derives the import path of dir from the nearest go.mod.
// Without a go.mod the package name is used.
func importPathFor(dir, pkgName string) string {
	cur := dir
	for {
		data, err := os.ReadFile(filepath.Join(cur, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				break
			}
			rel, err := filepath.Rel(cur, dir)
			if err != nil || rel == "." {
				return modPath
			}
			return modPath + "/" + filepath.ToSlash(rel)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return pkgName
}
