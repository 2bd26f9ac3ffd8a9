package maml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mamlgen/internal/logger"
	"mamlgen/internal/xmltree"
)

// ErrIO matches any *IOError
var ErrIO = errors.New("help document write failed")

// IOError reports a failure writing the help document
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s help document: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s help document %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) work
func (e *IOError) Is(target error) bool { return target == ErrIO }

// Emit writes the document to w
func Emit(doc *Document, w io.Writer) error {
	if doc == nil || doc.Root == nil {
		return &IOError{Op: "write", Err: errors.New("document is empty")}
	}
	if err := xmltree.Write(w, doc.Root); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// Save writes the document to path. The content goes to a temporary file in
// the same directory first, so a failed write leaves no partial output.
func Save(doc *Document, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Path: path, Op: "create", Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if err := Emit(doc, tmp); err != nil {
		tmp.Close()
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Path: path, Op: "close", Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return &IOError{Path: path, Op: "chmod", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &IOError{Path: path, Op: "rename", Err: err}
	}
	committed = true

	logger.Debug("Wrote help document", "path", path, "commands", len(doc.Commands))
	return nil
}
