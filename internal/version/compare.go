package version

import (
	"errors"
	"strconv"
	"strings"
)

var splitRe = strings.NewReplacer("-", ".", "_", ".")

// CompareVersions orders two version strings by dotted numeric segments.
// Returns 1 when a is newer than b, -1 when older, 0 when equal. A missing
// trailing segment counts as zero, so "1.2" equals "1.2.0". Non-numeric
// segments coerce to zero, which makes the comparison blind to suffix tags:
// "1.0-beta" and "1.0" compare equal. That is intentional; callers only ask
// "is this strictly newer", not for semver ordering.
func CompareVersions(a, b string) int {
	segsA := segments(a)
	segsB := segments(b)

	n := len(segsA)
	if len(segsB) > n {
		n = len(segsB)
	}

	for i := 0; i < n; i++ {
		va, vb := 0, 0
		if i < len(segsA) {
			va = segsA[i]
		}
		if i < len(segsB) {
			vb = segsB[i]
		}
		if va > vb {
			return 1
		}
		if va < vb {
			return -1
		}
	}
	return 0
}

func segments(v string) []int {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.TrimPrefix(v, "v")
	v = splitRe.Replace(v)

	parts := strings.Split(v, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}

// ErrBadBuild flags a build string with no usable digits. Such builds are
// incomparable: the reconciliation policy rejects the candidate instead of
// guessing.
var ErrBadBuild = errors.New("build number is not numeric")

// CompareBuilds orders two build identifiers as plain integers after
// stripping every non-digit character.
func CompareBuilds(a, b string) (int, error) {
	na, err := buildNumber(a)
	if err != nil {
		return 0, err
	}
	nb, err := buildNumber(b)
	if err != nil {
		return 0, err
	}

	switch {
	case na > nb:
		return 1, nil
	case na < nb:
		return -1, nil
	default:
		return 0, nil
	}
}

func buildNumber(s string) (uint64, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, ErrBadBuild
	}
	n, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return 0, ErrBadBuild
	}
	return n, nil
}
