package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a parsed semantic version. Prerelease is the identifier suffix
// (e.g. "alpha" in 1.2.0-alpha.3) and PrereleaseCounter its trailing numeric
// counter. A counter of 0 means the suffix carries no counter.
// Fields are ordered to minimize memory padding.
type Version struct {
	Prerelease        string
	Major             int
	Minor             int
	Patch             int
	PrereleaseCounter int
}

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+[0-9A-Za-z.-]+)?$`)

// ParseVersion parses a semantic version string such as "1.2.3" or
// "1.2.3-alpha.4". A leading "v" is not accepted; tag prefixes are stripped
// by the caller before parsing.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid semantic version %q", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	v := Version{Major: major, Minor: minor, Patch: patch}
	if m[4] != "" {
		v.Prerelease, v.PrereleaseCounter = splitPrerelease(m[4])
	}
	return v, nil
}

// splitPrerelease separates a trailing numeric counter from the prerelease
// identifier: "alpha.3" -> ("alpha", 3), "alpha" -> ("alpha", 0).
func splitPrerelease(pre string) (string, int) {
	idx := strings.LastIndex(pre, ".")
	if idx < 0 {
		return pre, 0
	}
	counter, err := strconv.Atoi(pre[idx+1:])
	if err != nil || counter < 0 {
		return pre, 0
	}
	return pre[:idx], counter
}

// String renders the version in release form, e.g. "1.2.3-alpha.4".
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
		if v.PrereleaseCounter > 0 {
			fmt.Fprintf(&b, ".%d", v.PrereleaseCounter)
		}
	}
	return b.String()
}

// Base returns the version with any prerelease identifier stripped.
func (v Version) Base() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// IsPrerelease reports whether the version carries a prerelease identifier.
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// Compare orders versions per the semver specification, including prerelease
// precedence (1.2.3-alpha < 1.2.3).
func (v Version) Compare(other Version) int {
	return semver.Compare("v"+v.String(), "v"+other.String())
}

// Equal reports whether two versions are identical, including prerelease parts.
func (v Version) Equal(other Version) bool {
	return v == other
}
