package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage in the generation pipeline
type Phase string

const (
	PhaseExtracting Phase = "Extracting"
	PhaseIndexing   Phase = "Indexing"
	PhaseBuilding   Phase = "Building"
	PhasePublishing Phase = "Publishing"
)

// DefaultPhases is the order the generator runs its phases in
var DefaultPhases = []Phase{PhaseExtracting, PhaseIndexing, PhaseBuilding, PhasePublishing}

// ProgressBar wraps the progressbar library with our custom styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
}

// NewProgressBar creates a progress bar for a phase writing to output.
// A negative total renders a spinner.
func NewProgressBar(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressBar{bar: bar, phase: phase}
}

// Increment advances the bar by one step
func (pb *ProgressBar) Increment() {
	if pb == nil {
		return
	}
	_ = pb.bar.Add(1)
}

// SetTotal updates the number of steps once it is known
func (pb *ProgressBar) SetTotal(total int) {
	if pb == nil {
		return
	}
	pb.bar.ChangeMax(total)
}

// Describe shows the item currently being processed
func (pb *ProgressBar) Describe(item string) {
	if pb == nil {
		return
	}
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, item))
}

// Finish completes the bar
func (pb *ProgressBar) Finish() {
	if pb == nil {
		return
	}
	_ = pb.bar.Finish()
}

// Pipeline tracks progress across the generation phases. A disabled pipeline
// hands out nil bars, whose methods are no-ops.
type Pipeline struct {
	phases   []Phase
	current  int
	bar      *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipelineWithOutput creates a pipeline progress tracker writing to output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{phases: phases, current: -1, output: output}
}

// Disable turns off all progress output
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase finishes the current phase and starts the next one
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.bar.Finish()
	p.bar = nil

	p.current++
	if p.current >= len(p.phases) || p.disabled {
		return nil
	}
	p.bar = NewProgressBar(p.phases[p.current], total, p.output)
	return p.bar
}

// Current returns the phase in progress, or "" before the first phase
func (p *Pipeline) Current() Phase {
	if p.current < 0 || p.current >= len(p.phases) {
		return ""
	}
	return p.phases[p.current]
}

// Finish completes the last phase
func (p *Pipeline) Finish() {
	p.bar.Finish()
	p.bar = nil
}
