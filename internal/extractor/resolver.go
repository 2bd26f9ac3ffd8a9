package extractor

import (
	"errors"
	"fmt"
	"go/importer"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"mamlgen/internal/logger"
)

var errResolverReleased = errors.New("dependency resolver already released")

// resolver resolves the imports of a module being loaded. Standard
// resolution is tried first; when it fails, the module's own directory is
// searched for a package directory of the same name, which is then parsed and
// type-checked in-process.
//
// A resolver is scoped to one load: acquire before type checking, call the
// returned release on every exit path. After release every Import fails.
type resolver struct {
	root     string
	fset     *token.FileSet
	standard types.ImporterFrom
	cache    map[string]*types.Package
	pending  map[string]bool
	active   bool

	// Local records the import paths satisfied from the module directory
	Local []string
}

func newResolver(root string, fset *token.FileSet) *resolver {
	r := &resolver{
		root:    root,
		fset:    fset,
		cache:   make(map[string]*types.Package),
		pending: make(map[string]bool),
	}
	if imp, ok := importer.ForCompiler(fset, "source", nil).(types.ImporterFrom); ok {
		r.standard = imp
	}
	return r
}

// acquire activates the resolver and returns its release function
func (r *resolver) acquire() func() {
	r.active = true
	return func() {
		r.active = false
		r.cache = make(map[string]*types.Package)
	}
}

// Import implements types.Importer
func (r *resolver) Import(importPath string) (*types.Package, error) {
	return r.ImportFrom(importPath, r.root, 0)
}

// ImportFrom implements types.ImporterFrom
func (r *resolver) ImportFrom(importPath, dir string, mode types.ImportMode) (*types.Package, error) {
	if !r.active {
		return nil, errResolverReleased
	}
	if pkg, ok := r.cache[importPath]; ok {
		return pkg, nil
	}

	var stdErr error
	if r.standard != nil {
		pkg, err := r.standard.ImportFrom(importPath, dir, mode)
		if err == nil {
			r.cache[importPath] = pkg
			return pkg, nil
		}
		stdErr = err
	} else {
		stdErr = fmt.Errorf("no standard importer available")
	}

	localDir := r.findLocal(importPath)
	if localDir == "" {
		return nil, fmt.Errorf("could not resolve import %q (not found in %s): %w", importPath, r.root, stdErr)
	}

	if r.pending[importPath] {
		return nil, fmt.Errorf("import cycle through %q", importPath)
	}
	r.pending[importPath] = true
	defer delete(r.pending, importPath)

	logger.Debug("resolving dependency from module directory", "import", importPath, "dir", localDir)

	files, _, err := parseDir(r.fset, localDir)
	if err != nil {
		return nil, fmt.Errorf("could not load dependency %q: %w", importPath, err)
	}

	var firstErr error
	conf := types.Config{
		Importer: r,
		Error: func(err error) {
			if firstErr == nil {
				firstErr = err
			}
		},
	}
	pkg, _ := conf.Check(importPath, r.fset, files, nil)
	if firstErr != nil {
		return nil, fmt.Errorf("could not type-check dependency %q: %w", importPath, firstErr)
	}

	r.cache[importPath] = pkg
	r.Local = append(r.Local, importPath)
	return pkg, nil
}

// findLocal looks for a directory named after the last import path element,
// first directly under the module directory, then anywhere below it
func (r *resolver) findLocal(importPath string) string {
	base := path.Base(importPath)
	if base == "." || base == "/" || base == "" {
		return ""
	}

	direct := filepath.Join(r.root, base)
	if hasGoFiles(direct) {
		return direct
	}

	matches, err := doublestar.Glob(os.DirFS(r.root), "**/"+base)
	if err != nil {
		return ""
	}
	sort.Strings(matches)
	for _, m := range matches {
		candidate := filepath.Join(r.root, filepath.FromSlash(m))
		if hasGoFiles(candidate) {
			return candidate
		}
	}
	return ""
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Type().IsRegular() || e.Type()&fs.ModeSymlink != 0 {
			if filepath.Ext(e.Name()) == ".go" {
				return true
			}
		}
	}
	return false
}
