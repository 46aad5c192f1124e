package version // import "github.com/bookgrove/bookgrove/version"

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the service version. Bump the minor part whenever the
// database schema changes, so that migrations are picked up.
var Version = "0.2.1"

func GetCurrentVersion() string {
	return Version
}

// GetSchemaVersion returns the version that a schema snapshot belongs to,
// which is the minor version with a zero patch.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

// GetMinorVersion returns the "major.minor" part of a version string.
func GetMinorVersion(version string) string {
	versionList := strings.Split(version, ".")
	if len(versionList) < 2 {
		return version
	}
	return strings.Join(versionList[:2], ".")
}

func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > 0
}

func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) >= 0
}

// SortVersion sorts a list of versions in ascending semver order, in place.
func SortVersion(versionList []string) {
	for i := 0; i < len(versionList); i++ {
		for j := i + 1; j < len(versionList); j++ {
			if IsVersionGreaterThan(versionList[i], versionList[j]) {
				versionList[i], versionList[j] = versionList[j], versionList[i]
			}
		}
	}
}
