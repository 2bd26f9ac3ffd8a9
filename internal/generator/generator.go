// Package generator runs the extract, index, build and publish pipeline.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"mamlgen/internal/config"
	"mamlgen/internal/exporter"
	"mamlgen/internal/extractor"
	"mamlgen/internal/logger"
	"mamlgen/internal/maml"
	"mamlgen/internal/model"
	"mamlgen/internal/ui"
	"mamlgen/internal/xmldoc"
)

// Extractor produces the command descriptors of a module
type Extractor interface {
	Extract(modulePath string) ([]*model.Command, error)
}

// Generator produces the help document and its publications for one
// configuration. A Generator is not safe for concurrent Run calls.
type Generator struct {
	cfg       *config.Config
	extractor Extractor
	progress  io.Writer
}

// Option customizes a Generator
type Option func(*Generator)

// WithExtractor replaces the default source extractor
func WithExtractor(e Extractor) Option {
	return func(g *Generator) { g.extractor = e }
}

// WithProgress renders per-phase progress bars to w. Progress is off by
// default.
func WithProgress(w io.Writer) Option {
	return func(g *Generator) { g.progress = w }
}

// New creates a Generator for cfg. cfg must already be resolved.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.extractor == nil {
		g.extractor = extractor.New(cfg.CapabilityMethod)
	}
	return g
}

// Result summarizes a successful run
type Result struct {
	Commands     int
	Undocumented []string
	// Orphaned lists P: members of extracted commands that match no parameter
	Orphaned []string
	Outputs  []string
}

// Run executes the pipeline. Extraction and documentation errors are
// returned as produced, and nothing is written when either fails.
func (g *Generator) Run(ctx context.Context) (result *Result, err error) {
	pipeline := ui.NewPipelineWithOutput(ui.DefaultPhases, g.progress)
	if g.progress == nil {
		pipeline.Disable()
	}
	defer func() {
		pipeline.Finish()
		if err != nil {
			logger.Debug("Generation stopped", "phase", pipeline.Current(), "err", err)
		}
	}()

	// --- Phase 1: Extracting ---
	logger.Info("Extracting commands", "module", g.cfg.Module)
	bar := pipeline.NextPhase(-1)
	commands, err := g.extractor.Extract(g.cfg.Module)
	if err != nil {
		return nil, err
	}
	bar.SetTotal(len(commands))
	commands = g.filter(commands, bar)
	bar.Finish()
	logger.Info("Commands extracted", "count", len(commands))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- Phase 2: Indexing ---
	bar = pipeline.NextPhase(-1)
	docs, err := g.index()
	if err != nil {
		return nil, err
	}
	bar.Finish()

	// --- Phase 3: Building ---
	bar = pipeline.NextPhase(len(commands))
	doc := maml.Build(commands, docs, maml.Options{Extended: g.cfg.Extended})
	result = &Result{Commands: len(doc.Commands), Orphaned: orphanedDocs(commands, docs)}
	for _, cmd := range doc.Commands {
		bar.Describe(cmd.Name)
		if !cmd.Documented {
			logger.Warn("Command has no documentation entry", "command", cmd.Name, "type", cmd.TypeName)
			result.Undocumented = append(result.Undocumented, cmd.Name)
		}
		bar.Increment()
	}
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- Phase 4: Publishing ---
	exporters := exporter.GetExporters(g.cfg.Formats)
	bar = pipeline.NextPhase(len(exporters))

	// A MAML failure is fatal; other publishers are reported together
	var exportErrors []error
	for _, exp := range exporters {
		path := exporter.OutputPath(g.cfg.Output, exp.Format())
		bar.Describe(exp.Format())
		if err := exp.Export(doc, path); err != nil {
			if exp.Format() == "maml" {
				return nil, err
			}
			logger.Error("Export failed", "format", exp.Format(), "path", path, "err", err)
			exportErrors = append(exportErrors, err)
		} else {
			logger.Info("Wrote output", "format", exp.Format(), "path", path)
			result.Outputs = append(result.Outputs, path)
		}
		bar.Increment()
	}

	if len(exportErrors) > 0 {
		return result, fmt.Errorf("%d of %d exports failed: %w", len(exportErrors), len(exporters), errors.Join(exportErrors...))
	}
	return result, nil
}

// filter drops commands matching the configured exclude patterns
func (g *Generator) filter(commands []*model.Command, bar *ui.ProgressBar) []*model.Command {
	kept := commands[:0:0]
	for _, cmd := range commands {
		bar.Describe(cmd.Name())
		if g.cfg.Excluded(cmd.Name()) {
			logger.Debug("Excluding command", "command", cmd.Name())
		} else {
			kept = append(kept, cmd)
		}
		bar.Increment()
	}
	return kept
}

// orphanedDocs returns the property entries of each command's type that name
// no parameter of the command
func orphanedDocs(commands []*model.Command, docs *xmldoc.Index) []string {
	var orphans []string
	for _, cmd := range commands {
		params := make(map[string]bool, len(cmd.Parameters))
		for _, p := range cmd.Parameters {
			params[p.Name] = true
		}
		for _, e := range docs.PropertiesOf(cmd.FullName) {
			if !params[e.MemberName] {
				logger.Warn("Documentation entry matches no parameter", "command", cmd.Name(), "member", e.Name)
				orphans = append(orphans, e.Name)
			}
		}
	}
	return orphans
}

// index parses the documentation file. A missing file at the defaulted path
// yields an empty index.
func (g *Generator) index() (*xmldoc.Index, error) {
	docs, err := xmldoc.Parse(g.cfg.Doc)
	if err == nil {
		logger.Info("Documentation indexed", "path", g.cfg.Doc, "assembly", docs.AssemblyName(), "entries", docs.Len())
		return docs, nil
	}
	if g.cfg.DocDefaulted() && errors.Is(err, fs.ErrNotExist) {
		logger.Warn("No documentation file found, all commands will be undocumented", "path", g.cfg.Doc)
		return nil, nil
	}
	return nil, err
}
