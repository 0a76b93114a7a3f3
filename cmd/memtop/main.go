package main

import (
	"github.com/kubescope/memtop/internal/cli"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
