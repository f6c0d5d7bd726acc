package version

import "fmt"

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/docnav/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the one-line version banner printed by --version.
func String() string {
	return fmt.Sprintf("docnav %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
