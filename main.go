package main

import (
	"fmt"
	"os"

	"github.com/sshashank124/fission-sub000/cmd"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fission: %v\n", err)
		os.Exit(1)
	}
}
