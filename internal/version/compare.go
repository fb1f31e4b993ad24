package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is ignored.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// IsNewer reports whether recorded is a strictly newer release than running.
// Versions that are not semver, such as "dev" or "unknown", never compare as
// newer.
func IsNewer(recorded, running string) bool {
	cmp, err := Compare(recorded, running)
	return err == nil && cmp == 1
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
