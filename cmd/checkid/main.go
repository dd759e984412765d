// Package main provides the entry point for checkid.
//
// Usage:
//
//	checkid [serve]     - Run the HTTP service
//	checkid gen         - Print new identifiers
//	checkid check ID    - Validate an identifier
//	checkid presets     - List bundled alphabets
package main

import (
	"github.com/roniherschmann/go-checkid/commands"
)

var (
	// Version information (set via ldflags)
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	commands.SetVersionInfo(Version, Commit, Date)
	commands.Execute()
}
