package renderer

import (
	"context"
	"time"

	"github.com/sshashank124/fission-sub000/pkg/log"
)

var logger = log.New("renderer")

// Options contains configuration for the pass scheduler
type Options struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// Number of passes queued on the worker pool at once
const passLookahead = 2

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Render runs passes until the state holds in.Passes completed passes or ctx
// is cancelled. A nil state starts a fresh image. Cancellation is checked
// whenever a pass completes: no further pass is submitted, but the pass
// already in flight is finished and accumulated, so every pass recorded in
// the returned state is complete. A cancelled render returns its state with
// a nil error.
func Render(ctx context.Context, in *Integrator, state *RenderState, opts Options, progress Progress) (*RenderState, *RenderStats, error) {
	camera := in.Scene.Camera
	if state == nil {
		state = NewRenderState(camera.Width, camera.Height)
	} else if err := state.Validate(camera); err != nil {
		return nil, nil, err
	}
	if progress == nil {
		progress = NopProgress{}
	}

	tiles := NewTileGrid(camera.Width, camera.Height, opts.TileSize)
	// At most two passes are outstanding, so neither queue ever blocks
	pool := NewWorkerPool(in, passLookahead*len(tiles), opts.NumWorkers)
	stats := &RenderStats{
		Width:      camera.Width,
		Height:     camera.Height,
		NumWorkers: pool.GetNumWorkers(),
		ResumedAt:  state.Pass,
	}

	logger.Noticef("rendering %dx%d, passes %d/%d, %d tiles, %d workers",
		camera.Width, camera.Height, state.Pass, in.Passes, len(tiles), pool.GetNumWorkers())
	progress.Start(in.Passes, state.Pass)
	start := time.Now()

	pool.Start()
	defer pool.Stop()

	// Passes are submitted one ahead of the pass being accumulated. Results
	// of the later pass are held back until the earlier one is complete so
	// every pixel sums its samples in pass order.
	next := state.Pass
	stopped := false
	submit := func() {
		if next >= in.Passes || stopped {
			return
		}
		if ctx.Err() != nil {
			logger.Noticef("rendering cancelled before pass %d", next)
			stopped = true
			return
		}
		for _, tile := range tiles {
			pool.SubmitTask(TileTask{Tile: tile, Pass: next})
		}
		next++
	}
	for i := 0; i < passLookahead; i++ {
		submit()
	}

	current := PassStats{Pass: state.Pass}
	passStart := time.Now()
	accumulate := func(result TileResult) {
		state.Image.Add(result.Block)
		current.Tiles++
		current.Samples += result.Samples
		current.TileTime += result.Duration
	}

	var held []TileResult
	for state.Pass < next {
		result := <-pool.Results()
		if result.Pass != state.Pass {
			held = append(held, result)
			continue
		}
		accumulate(result)

		for state.Pass < next && current.Tiles == len(tiles) {
			current.Duration = time.Since(passStart)
			stats.Passes = append(stats.Passes, current)
			state.Pass++
			logger.Infof("pass %d completed in %v (%.0f samples/s)",
				current.Pass, current.Duration, current.SamplesPerSecond())
			progress.Advance(state.Pass)

			current = PassStats{Pass: state.Pass}
			passStart = time.Now()
			submit()

			early := held
			held = nil
			for _, r := range early {
				if r.Pass == state.Pass {
					accumulate(r)
				} else {
					held = append(held, r)
				}
			}
		}
	}

	stats.Cancelled = state.Pass < in.Passes
	stats.Elapsed = time.Since(start)
	progress.Finish(stats.Cancelled)
	logger.Noticef("rendered %d passes in %v", len(stats.Passes), stats.Elapsed)

	return state, stats, nil
}
