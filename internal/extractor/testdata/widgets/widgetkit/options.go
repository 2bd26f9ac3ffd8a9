package widgetkit

// Options tunes widget lookups
type Options struct {
	Depth int
}
