// Package version provides engine version information and compatibility
// checks for analysis packs. The version can be overridden at build time:
//
//	go build -ldflags "-X github.com/ventuslabs/siteflow/version.version=1.0.0"
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

// devVersion is the default version when not set via ldflags.
const devVersion = "0.3.0"

var version = devVersion

// Version returns the engine version string. Falls back to module build
// info when available.
func Version() string {
	if version != devVersion {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return devVersion
}

// Satisfies reports whether the current engine version satisfies a semver
// constraint (e.g. ">= 0.3", "~0.3.0"). An empty constraint always
// satisfies.
func Satisfies(constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(Version())
	if err != nil {
		return false, fmt.Errorf("invalid engine version %q: %w", Version(), err)
	}
	return c.Check(v), nil
}
