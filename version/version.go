// Package version reports the build version of ecdemo.
package version

import (
	"runtime/debug"

	"github.com/samber/lo"
)

// Version and Commit hold the version information
var (
	Version = "1.0.0"
	Commit  = ""
)

// MCPVersion is the version advertised by the tool surface
const MCPVersion = "1.0.0"

func init() {
	if i, ok := debug.ReadBuildInfo(); ok {
		if vcsv, ok := lo.Find(i.Settings, func(s debug.BuildSetting) bool {
			return s.Key == "vcs.revision"
		}); ok {
			Commit = vcsv.Value
		}
	}
}
