package cmd

import (
	"github.com/sshashank124/fission-sub000/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("fission")

// setupLogging applies --log-level first so that -v and -vv can only raise verbosity
func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") && log.GetLevel() > log.Info {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
