package main

import (
	"os"

	"github.com/ivlev/svgapatch/internal/cli"
)

// Injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cli.SetVersion(version, commit)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
