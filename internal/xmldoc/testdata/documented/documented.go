// Package documented is a small documented package used by the generator tests.
package documented

// Shared holds parameters used by several commands.
type Shared struct {
	// Force skips confirmation.
	Force bool
}

// GetThing gets things.
//
// Things are looked up by name.
//
// Wildcards are allowed.
type GetThing struct {
	Shared

	// Name of the thing.
	Name string

	Limit int // Maximum number of results.

	hidden int
}

// Undocumented members still appear without a summary.
type Mode int

type Bare struct{}
