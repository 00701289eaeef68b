package serverless

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

// MinimumFrameworkVersion is the oldest framework release whose package
// patterns the packager writes.
const MinimumFrameworkVersion = "2.32"

// CheckFrameworkVersion rejects framework versions older than
// MinimumFrameworkVersion with a KindHostMisconfiguration error. A leading
// "v" is optional.
func CheckFrameworkVersion(version string) error {
	canonical := canonicalVersion(version)
	if !semver.IsValid(canonical) {
		return &depgraph.ResolveError{
			Kind: depgraph.KindHostMisconfiguration,
			Name: fmt.Sprintf("framework version %q", version),
			Err:  fmt.Errorf("not a version"),
		}
	}
	if semver.Compare(canonical, canonicalVersion(MinimumFrameworkVersion)) < 0 {
		return &depgraph.ResolveError{
			Kind: depgraph.KindHostMisconfiguration,
			Name: "framework version " + version,
			Err:  fmt.Errorf("%s or higher is required", MinimumFrameworkVersion),
		}
	}
	return nil
}

// DeclaredFrameworkVersion returns the lowest release a frameworkVersion
// constraint such as "^3.0.0" or ">=2.32.0 <4" admits. It returns "" when the
// constraint is empty or has no lower bound.
func DeclaredFrameworkVersion(constraint string) string {
	fields := strings.Fields(constraint)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "<") {
		return ""
	}

	version := strings.TrimLeft(fields[0], "^~>=")
	if version == "" && len(fields) > 1 {
		version = fields[1]
	}
	for _, wildcard := range []string{".x", ".*"} {
		for strings.HasSuffix(version, wildcard) {
			version = strings.TrimSuffix(version, wildcard)
		}
	}
	return version
}

func canonicalVersion(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
