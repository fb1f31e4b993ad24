package version

import (
	"errors"
	"runtime/debug"
)

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/speculate/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/speculate/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/speculate/internal/version.Date={{.Date}}
)

// ErrUnavailable is returned when no release version can be determined
var ErrUnavailable = errors.New("version unavailable")

var readBuildInfo = debug.ReadBuildInfo

// Lookup returns the release version of the running binary. Builds without
// ldflags fall back to the main module version recorded by `go install`.
func Lookup() (string, error) {
	if Version != "" && Version != "dev" {
		return Version, nil
	}
	info, ok := readBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "", ErrUnavailable
	}
	return info.Main.Version, nil
}
