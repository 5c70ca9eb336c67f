// turtle is the layout engine of a terminal music player.
//
// It reads a declarative layout file (TOML or YAML), solves it into screen
// regions for the current terminal size and redraws when the file changes.
//
// Usage:
//
//	turtle [flags]
//	turtle check [--width N] [--height N]
//
// Flags:
//
//	--layout-config string  Path to the layout file (env TURTLE_LAYOUT_CONFIG)
//	--dump-layout string    Write the effective layout to FILE and exit
//	--log-file string       Write logs to this file (env TURTLE_LOG_FILE)
//	-v, --verbose           Enable debug logging (env TURTLE_VERBOSE)
//	--version               Print version and exit
package main

import (
	"fmt"
	"os"

	"gitlab.com/tinyland/lab/turtle-layout/cmd"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "turtle:", err)
		os.Exit(1)
	}
}
