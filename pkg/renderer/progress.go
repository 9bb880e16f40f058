package renderer

// Progress receives pass level updates from Render. Calls are made from the
// goroutine that invoked Render.
type Progress interface {
	// Start is called once with the total pass count and the passes already
	// completed by a resumed state.
	Start(total, completed int)
	// Advance is called after each pass is fully accumulated.
	Advance(completed int)
	// Finish is called once when rendering stops.
	Finish(cancelled bool)
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) Start(int, int) {}
func (NopProgress) Advance(int)    {}
func (NopProgress) Finish(bool)    {}
