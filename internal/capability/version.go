package capability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a parsed major.minor.patch version. Missing components default
// to zero, so "7" and "7.0.0" compare equal.
type Version struct {
	Major int
	Minor int
	Patch int
}

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+){0,2}`)

// ParseVersion parses a dotted version string. Pre-release and build
// suffixes after the numeric components are ignored.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if trimmed == "" {
		return Version{}, fmt.Errorf("version string is empty")
	}

	numeric := versionPattern.FindString(trimmed)
	if numeric == "" || !strings.HasPrefix(trimmed, numeric) {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	parts := strings.Split(numeric, ".")
	components := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		components[i] = n
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// ExtractVersion scans free-form tool output (e.g. "git version 2.43.0" or
// "PowerShell 7.4.1") for the first dotted version it contains.
func ExtractVersion(output string) (Version, bool) {
	numeric := versionPattern.FindString(output)
	if numeric == "" {
		return Version{}, false
	}
	v, err := ParseVersion(numeric)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	pairs := [][2]int{{v.Major, o.Major}, {v.Minor, o.Minor}, {v.Patch, o.Patch}}
	for _, pair := range pairs {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v satisfies minimum o.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// String renders the version in dotted form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
