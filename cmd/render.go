package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/sshashank124/fission-sub000/pkg/loaders"
	"github.com/sshashank124/fission-sub000/pkg/output"
	"github.com/sshashank124/fission-sub000/pkg/renderer"
)

// Render a scene, optionally resuming from and checkpointing to a state file.
func Render(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return errors.New("usage: render scene.yaml [progress.state]")
	}
	scenePath := ctx.Args().First()
	statePath := ctx.Args().Get(1)

	in, err := loaders.LoadScene(scenePath)
	if err != nil {
		return err
	}
	if passes := ctx.Int("passes"); passes > 0 {
		in.Passes = passes
	}

	var state *renderer.RenderState
	if statePath != "" {
		if state, err = loadState(statePath); err != nil {
			return err
		}
	}

	opts := renderer.DefaultOptions()
	if tileSize := ctx.Int("tile-size"); tileSize > 0 {
		opts.TileSize = tileSize
	}
	opts.NumWorkers = ctx.Int("workers")

	var progress renderer.Progress = renderer.NopProgress{}
	if !ctx.Bool("no-progress") {
		progress = newPassProgress(os.Stderr)
	}

	runCtx, stop := interruptContext()
	defer stop()

	state, stats, err := renderer.Render(runCtx, in, state, opts, progress)
	if err != nil {
		return err
	}
	if stats.Cancelled {
		logger.Warningf("render interrupted after %d of %d passes", state.Pass, in.Passes)
	}

	if statePath != "" {
		if err := renderer.SaveState(statePath, state); err != nil {
			return err
		}
	}

	out := ctx.String("out")
	if out == "" {
		out = strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath)) + ".exr"
	}
	if err := output.WriteEXR(out, state.Image); err != nil {
		return err
	}
	if preview := ctx.String("preview"); preview != "" {
		opts := output.PreviewOptions{
			Exposure: ctx.Float64("exposure"),
			Width:    ctx.Int("preview-width"),
		}
		if err := output.WritePreview(preview, state.Image, opts); err != nil {
			return err
		}
	}

	displayRenderStats(stats)
	return nil
}

// loadState reads a checkpoint, treating a missing file as a fresh start.
func loadState(path string) (*renderer.RenderState, error) {
	state, err := renderer.LoadState(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Noticef("no state at %s; starting a new render", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Noticef("resuming from %s at pass %d", path, state.Pass)
	return state, nil
}

// interruptContext returns a context cancelled by the first SIGINT. Later
// interrupts fall through to the default handler and terminate the process.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			logger.Warning("interrupt received; stopping after the current pass (interrupt again to abort)")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
