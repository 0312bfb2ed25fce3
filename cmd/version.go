// Package cmd holds build metadata for the rig binaries.
package cmd

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags, e.g.
//
//	-X github.com/thoreinstein/rig/cmd.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Summary returns the multi-line build description printed by "rig version".
func Summary() string {
	return fmt.Sprintf("rig version %s\n  commit: %s\n  built:  %s\n  go:     %s\n",
		Version, Commit, Date, runtime.Version())
}
