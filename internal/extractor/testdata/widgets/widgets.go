package widgets

import "widgetkit"

// Widget is the object written by the widget commands
type Widget struct {
	ID   int
	Name string
}

// Color selects the widget finish
type Color int

const (
	Red Color = iota
	Green
	Blue
)

const defaultColor Color = Green

// Common holds parameters shared by every widget command
type Common struct {
	Verbose bool `param:""`
}

// GetWidget returns widgets by name or id
type GetWidget struct {
	_ struct{} `cmdlet:"Get,Widget" output:"Widget,Widget,[]string"`
	Common

	Name  []string           `param:"Set=ByName,Mandatory,Position=0,ValueFromPipeline" alias:"N" wildcards:""`
	Id    int                `param:"Set=ById,Mandatory,Position=0,ValueFromPipelineByPropertyName"`
	Color Color              `param:""`
	Kit   *widgetkit.Options `param:"Bogus"`
	Tags  []rune             `param:"Set=ByName;Set=ById,Position=1"`
	count int
}

func (c *GetWidget) ProcessRecord() error {
	c.count++
	return nil
}

// SetWidget updates a widget
type SetWidget struct {
	_ struct{} `cmdlet:"Set,Widget"`

	InputObject Widget `param:"ValueFromPipeline,Mandatory"`
}

func (SetWidget) ProcessRecord() error { return nil }

// NewGadget sorts before the widget commands
type NewGadget struct {
	_ struct{} `cmdlet:"New,Gadget"`
}

func (NewGadget) ProcessRecord() error { return nil }

// BrokenWidget has a marker without a noun
type BrokenWidget struct {
	_ struct{} `cmdlet:"Get,"`
}

func (BrokenWidget) ProcessRecord() error { return nil }

// Unmarked has the capability but no marker
type Unmarked struct{}

func (Unmarked) ProcessRecord() error { return nil }

// Incapable has a marker but no capability
type Incapable struct {
	_ struct{} `cmdlet:"Remove,Widget"`
}

type hiddenCommand struct {
	_ struct{} `cmdlet:"Get,Hidden"`
}

func (hiddenCommand) ProcessRecord() error { return nil }

var _ = defaultColor
