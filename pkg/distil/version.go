package distil

import (
	"strconv"
	"strings"
)

// APIVersion is the immutable record of API versions this client speaks.
// It is passed explicitly wherever version negotiation occurs.
type APIVersion struct {
	Min        string
	Max        string
	Deprecated []string
}

// DefaultAPIVersion returns the version record for this release: only the v2
// API is supported.
func DefaultAPIVersion() APIVersion {
	return APIVersion{Min: "2", Max: "2"}
}

// Supported reports whether the given version can be negotiated. Versions
// are compared numerically, so "10" sorts above "2" and "2.1" above "2".
func (v APIVersion) Supported(version string) bool {
	parsed, ok := parseVersion(version)
	if !ok {
		return false
	}

	minVersion, ok := parseVersion(v.Min)
	if !ok {
		return false
	}

	maxVersion, ok := parseVersion(v.Max)
	if !ok {
		return false
	}

	return compareVersions(parsed, minVersion) >= 0 && compareVersions(parsed, maxVersion) <= 0
}

// IsDeprecated reports whether the given version is deprecated.
func (v APIVersion) IsDeprecated(version string) bool {
	for _, deprecated := range v.Deprecated {
		if deprecated == version {
			return true
		}
	}

	return false
}

// parseVersion splits a dotted version string into its numeric parts.
func parseVersion(version string) ([]int, bool) {
	if version == "" {
		return nil, false
	}

	parts := strings.Split(version, ".")
	numbers := make([]int, len(parts))

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, false
		}

		numbers[i] = n
	}

	return numbers, true
}

// compareVersions orders version parts numerically; missing parts count as
// zero, so "2" and "2.0" compare equal.
func compareVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var av, bv int

		if i < len(a) {
			av = a[i]
		}

		if i < len(b) {
			bv = b[i]
		}

		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}

	return 0
}
