// Package version exposes build identity stamped in through ldflags.
package version

//nolint:revive // Overwritten by the build pipeline.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
