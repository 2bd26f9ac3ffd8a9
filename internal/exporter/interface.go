package exporter

import (
	"mamlgen/internal/maml"
)

// Exporter publishes a built help document in one output format
type Exporter interface {
	// Format is the --format name of the exporter
	Format() string
	// Export writes doc to path
	Export(doc *maml.Document, path string) error
}
