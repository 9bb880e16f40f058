package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/sshashank124/fission-sub000/pkg/loaders"
)

// Inspect loads a scene and prints its statistics without rendering.
func Inspect(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	in, err := loaders.LoadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	displaySceneInfo(in)
	return nil
}
