package ui

import (
	"bytes"
	"testing"
)

func TestPipelinePhases(t *testing.T) {
	var out bytes.Buffer
	p := NewPipelineWithOutput(DefaultPhases, &out)

	if p.Current() != "" {
		t.Errorf("Current before start = %q, want empty", p.Current())
	}
	for i, want := range DefaultPhases {
		bar := p.NextPhase(2)
		if bar == nil {
			t.Fatalf("NextPhase %d returned nil", i)
		}
		if p.Current() != want {
			t.Errorf("Current = %q, want %q", p.Current(), want)
		}
		bar.Describe("item")
		bar.Increment()
		bar.Increment()
	}
	if p.NextPhase(1) != nil {
		t.Error("NextPhase past the last phase should return nil")
	}
	p.Finish()

	if out.Len() == 0 {
		t.Error("Enabled pipeline wrote no output")
	}
}

func TestDisabledPipelineIsSilent(t *testing.T) {
	var out bytes.Buffer
	p := NewPipelineWithOutput(DefaultPhases, &out)
	p.Disable()

	bar := p.NextPhase(3)
	if bar != nil {
		t.Fatal("Disabled pipeline should hand out nil bars")
	}
	// nil bars are safe to use
	bar.Increment()
	bar.SetTotal(5)
	bar.Describe("x")
	bar.Finish()
	p.Finish()

	if out.Len() != 0 {
		t.Errorf("Disabled pipeline wrote output: %q", out.String())
	}
	if p.Current() != PhaseExtracting {
		t.Errorf("Phase tracking should continue while disabled, got %q", p.Current())
	}
}
