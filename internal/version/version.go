package version

import (
	"runtime/debug"
	"sync"
)

// Version information for noid
const (
	// Version is the current semantic version of noid
	Version = "0.1.0"
)

// Set during build time (use -ldflags "-X .../internal/version.GitCommit=...")
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info returns version information as a string
func Info() string {
	return Version
}

// FullInfo returns detailed version information
func FullInfo() string {
	return "noid " + Version + " (commit: " + Revision() + ", built: " + BuildDate + ")"
}

var (
	revision     string
	revisionOnce sync.Once
)

// Revision returns GitCommit, falling back to the VCS revision recorded by
// the Go toolchain when the binary was built without ldflags.
func Revision() string {
	revisionOnce.Do(func() {
		revision = computeRevision()
	})
	return revision
}

func computeRevision() string {
	if GitCommit != "unknown" {
		return GitCommit
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}

	rev, modified := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if rev == "" {
		return GitCommit
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if modified {
		rev += "-dirty"
	}
	return rev
}
