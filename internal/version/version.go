// Package version implements the NexusLink version engine (spec §4.A):
// parsing semantic-version-like strings, comparing them, and evaluating
// range constraints against them. It is a leaf service with no
// dependencies on any other NexusLink package.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Wildcard is the sentinel value used for unconstrained components ("*" or
// "latest") and for the components of a Version that carry no numeric
// meaning.
const Wildcard = -1

// Version is a parsed semantic version: major.minor.patch, an optional
// ordered prerelease tag, and build metadata that is retained for display
// but ignored by Compare (spec §3 "Version").
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

// IsWildcard reports whether v represents the "*"/"latest" sentinel.
func (v Version) IsWildcard() bool {
	return v.Major == Wildcard && v.Minor == Wildcard && v.Patch == Wildcard
}

// WildcardVersion returns the (-1,-1,-1) sentinel Version.
func WildcardVersion() Version {
	return Version{Major: Wildcard, Minor: Wildcard, Patch: Wildcard}
}

// Parse decodes a version string per the grammar:
//
//	MAJOR("."MINOR("."PATCH)?)? ("-"PRERELEASE)? ("+"BUILD)?
//
// Missing minor/patch default to 0. The literals "*" and "latest" parse to
// the wildcard Version.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "*" || trimmed == "latest" {
		return WildcardVersion(), nil
	}
	if trimmed == "" {
		return Version{}, nxerrors.NewVersionMalformed(s, fmt.Errorf("empty version string"))
	}

	rest := trimmed
	var build string
	if idx := strings.IndexByte(rest, '+'); idx >= 0 {
		build = rest[idx+1:]
		rest = rest[:idx]
	}

	var prerelease string
	if idx := strings.IndexByte(rest, '-'); idx >= 0 {
		prerelease = rest[idx+1:]
		rest = rest[:idx]
	}

	parts := strings.Split(rest, ".")
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return Version{}, nxerrors.NewVersionMalformed(s, fmt.Errorf("expected MAJOR(.MINOR(.PATCH)?)?, got %q", rest))
	}

	nums := [3]int{0, 0, 0}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, nxerrors.NewVersionMalformed(s, fmt.Errorf("invalid numeric component %q", p))
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: prerelease,
		Build:      build,
	}, nil
}

// MustParse parses s and panics on error; intended for tests and
// compile-time-known constants, never for caller input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Format renders v back to its canonical string form. Round-tripping
// Parse then Format reproduces the input up to build-metadata
// normalization (spec §3 invariant).
func (v Version) Format() string {
	if v.IsWildcard() {
		return "*"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return v.Format()
}

// Compare returns -1, 0, or 1 per the rules in spec §4.A: the wildcard
// compares equal to itself and less than every real version; real
// versions compare major, minor, patch in order; among equal triples a
// version carrying a prerelease tag is less than the same triple without
// one, and two prereleases compare by byte-wise lexical order (a
// documented simplification of SemVer 2.0's dot-separated identifier
// comparison — see the "Open questions" note in the specification).
// Build metadata never participates.
func Compare(a, b Version) int {
	if a.IsWildcard() && b.IsWildcard() {
		return 0
	}
	if a.IsWildcard() {
		return -1
	}
	if b.IsWildcard() {
		return 1
	}

	if a.Major != b.Major {
		return cmpInt(a.Major, b.Major)
	}
	if a.Minor != b.Minor {
		return cmpInt(a.Minor, b.Minor)
	}
	if a.Patch != b.Patch {
		return cmpInt(a.Patch, b.Patch)
	}

	aPre, bPre := a.Prerelease != "", b.Prerelease != ""
	if aPre && !bPre {
		return -1
	}
	if !aPre && bPre {
		return 1
	}
	if aPre && bPre {
		return strings.Compare(a.Prerelease, b.Prerelease)
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
