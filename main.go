package main

import (
	"fmt"
	"os"

	"github.com/nconklindev/gridloc/internal/cli"
	"github.com/nconklindev/gridloc/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitFailure)
	}

	os.Exit(cli.Execute(cfg, cli.BuildInfo{Version: version, Commit: commit, Date: date}, nil))
}
