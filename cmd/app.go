package cmd

import (
	"github.com/urfave/cli"
)

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out, o",
		Usage: "exr filename for the rendered image (default: <scene>.exr)",
	},
	cli.StringFlag{
		Name:  "preview",
		Usage: "also write a tone-mapped png preview to this file",
	},
	cli.IntFlag{
		Name:  "preview-width",
		Usage: "resample the preview to this width (0 keeps the render resolution)",
	},
	cli.Float64Flag{
		Name:  "exposure",
		Usage: "preview exposure in stops",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 uses all cpus)",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Value: 64,
		Usage: "tile edge length in pixels",
	},
	cli.IntFlag{
		Name:  "passes",
		Usage: "override the number of passes in the scene",
	},
	cli.BoolFlag{
		Name:  "no-progress",
		Usage: "disable the progress bar",
	},
}

// NewApp returns the command line application.
func NewApp() *cli.App {
	// -v is the verbose flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := cli.NewApp()
	app.Name = "fission"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.ArgsUsage = "scene.yaml [progress.state]"
	app.Flags = append([]cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log verbosity: debug, info, notice, warning or error",
		},
	}, renderFlags...)
	app.Action = func(ctx *cli.Context) error {
		if ctx.NArg() == 0 {
			return cli.ShowAppHelp(ctx)
		}
		return Render(ctx)
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene",
			Description: `
Render all passes of a yaml scene description and write the result as an
OpenEXR image.

When a state file is given, rendering resumes from it if it exists and the
accumulated image is written back to it on completion or on interrupt. The
first ctrl-c stops rendering after the pass in flight.`,
			ArgsUsage: "scene.yaml [progress.state]",
			Flags:     renderFlags,
			Action:    Render,
		},
		{
			Name:      "inspect",
			Usage:     "print scene statistics without rendering",
			ArgsUsage: "scene.yaml",
			Action:    Inspect,
		},
	}

	return app
}
