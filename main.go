package main

import (
	"os"

	"github.com/mrlokans/jianjin/internal/cli"
	"github.com/mrlokans/jianjin/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	root := cli.NewRootCommand(Version+" ("+Commit+")", config.NewConfig)
	if err := root.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
