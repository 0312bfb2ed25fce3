// Package main is the entry point for the rig CLI.
package main

import (
	"os"

	"github.com/thoreinstein/rig/cmd/rig/commands"
	"github.com/thoreinstein/rig/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
