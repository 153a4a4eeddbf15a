package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.2", 0},
		{"1.2", "1.2.0", 0},
		{"2.0", "1.9.9", 1},
		{"1.9.9", "2.0", -1},
		{"v1.3", "1.2", 1},
		{"V2", "v2.0.0", 0},
		{"1.0-beta", "1.0", 0}, // suffix-blind, by contract
		{"1.0_1", "1.0.0", 1},
		{"0.6.6", "0.6.5", 1},
		{"10.0", "9.9", 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CompareVersions(tc.a, tc.b), "compare %q vs %q", tc.a, tc.b)
	}
}

func TestCompareVersionsReflexive(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"1", "1.2", "v1.2.3", "2024.1", "1.0-beta"} {
		assert.Zero(t, CompareVersions(v, v), "version %q", v)
	}
}

func TestCompareBuilds(t *testing.T) {
	t.Parallel()

	got, err := CompareBuilds("500", "400")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = CompareBuilds("400", "500")
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = CompareBuilds("b12345", "#12345")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCompareBuildsMalformed(t *testing.T) {
	t.Parallel()

	_, err := CompareBuilds("abc", "400")
	assert.ErrorIs(t, err, ErrBadBuild)

	_, err = CompareBuilds("500", "")
	assert.ErrorIs(t, err, ErrBadBuild)
}
