// Package version provides version information for airdock.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the current version of airdock.
	// This is set during build time via ldflags.
	Version = "dev"

	// BuildTime is the time when the binary was built.
	// This is set during build time via ldflags.
	BuildTime = "unknown"

	// Commit is the git commit SHA that the binary was built from.
	// This is set during build time via ldflags.
	Commit = "unknown"
)

// Info returns version information as a formatted string.
func Info() string {
	commitID := Commit
	if len(commitID) > 8 {
		commitID = commitID[:8]
	}

	return fmt.Sprintf("airdock %s (%s) - %s %s/%s",
		Version,
		commitID,
		BuildTime,
		runtime.GOOS,
		runtime.GOARCH,
	)
}
