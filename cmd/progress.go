package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// passProgress reports completed passes on a terminal progress bar.
type passProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newPassProgress(out io.Writer) *passProgress {
	return &passProgress{out: out}
}

func (p *passProgress) Start(total, completed int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("rendering passes"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
	)
	if completed > 0 {
		p.bar.Describe(fmt.Sprintf("resuming at pass %d", completed))
		p.bar.Set(completed)
	}
}

func (p *passProgress) Advance(completed int) {
	p.bar.Describe("rendering passes")
	p.bar.Set(completed)
}

func (p *passProgress) Finish(cancelled bool) {
	if cancelled {
		p.bar.Describe("cancelled")
		p.bar.RenderBlank()
	} else {
		p.bar.Finish()
	}
	fmt.Fprintln(p.out)
}
