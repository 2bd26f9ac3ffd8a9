package extractor

import (
	"errors"
	"fmt"
)

var (
	// ErrModuleLoad matches any *ModuleLoadError
	ErrModuleLoad = errors.New("module load failed")

	// ErrMalformedCommand matches any *MalformedCommandError
	ErrMalformedCommand = errors.New("malformed command")
)

// ModuleLoadError reports that the module could not be loaded or that one of
// its dependencies could not be resolved
type ModuleLoadError struct {
	Path string
	Err  error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("failed to load module %s: %v", e.Path, e.Err)
}

func (e *ModuleLoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrModuleLoad) work
func (e *ModuleLoadError) Is(target error) bool { return target == ErrModuleLoad }

// MalformedCommandError reports a type carrying the command marker without a
// usable verb and noun. It is recovered locally: the type is skipped.
type MalformedCommandError struct {
	Type   string
	Reason string
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("malformed command %s: %s", e.Type, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedCommand) work
func (e *MalformedCommandError) Is(target error) bool { return target == ErrMalformedCommand }
