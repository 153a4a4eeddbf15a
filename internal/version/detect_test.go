package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestDetectVersionCascade(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"dotted", "Game v1.2", "1.2"},
		{"three segments", "Palworld v0.6.6 Build 12345-CODEX (2024)", "0.6.6"},
		{"suffix tag", "Game v1.0-beta", "1.0-beta"},
		{"trailing letter", "Game v1.2b", "1.2b"},
		{"bare v number", "Game v7", "7"},
		{"keyword version", "Game Version 2.5", "2.5"},
		{"keyword update", "Game Update 1.14", "1.14"},
		{"keyword patch", "Game Patch 3", "3"},
		{"delimited", "Game [v1.2.3] Repack", "1.2.3"},
		{"qualifier adjacent", "Game Repack 1.5.2", "1.5.2"},
		{"last resort dotted", "Game 1.31 GOG", "1.31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectVersion(tc.title)
			assert.True(t, got.Found, "title %q", tc.title)
			assert.Equal(t, tc.want, got.Version)
			assert.False(t, got.IsDateVersion)
		})
	}
}

func TestDetectVersionNoFalsePositives(t *testing.T) {
	t.Parallel()

	for _, title := range []string{
		"Game vs Robots",
		"Cyberpunk 2077",
		"Just A Title",
		"Game v20251399", // impossible calendar date, not a version either
	} {
		got := DetectVersion(title)
		assert.False(t, got.Found, "title %q", title)
	}
}

func TestDetectVersionDateForms(t *testing.T) {
	t.Parallel()

	d := NewDetectorAt(fixedClock(2025, time.January, 20))

	cases := []struct {
		title string
		want  string
		date  time.Time
		stale bool
	}{
		{"Cyberpunk 2077 v20250115 GOG", "20250115", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Game v2025-01-15", "20250115", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Game v25-01-02", "250102", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"Game v241231", "241231", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range cases {
		got := d.DetectVersion(tc.title)
		assert.True(t, got.Found, "title %q", tc.title)
		assert.True(t, got.IsDateVersion, "title %q", tc.title)
		assert.Equal(t, tc.want, got.Version)
		assert.Equal(t, tc.date, got.DateValue)
		assert.Equal(t, tc.stale, got.IsStaleDateVersion, "title %q", tc.title)
	}
}

func TestDetectVersionPrefersExplicitOverDate(t *testing.T) {
	t.Parallel()

	d := NewDetectorAt(fixedClock(2025, time.January, 20))
	got := d.DetectVersion("Game v1.3 hotfix v20250115")

	assert.True(t, got.Found)
	assert.True(t, got.HasPreferredVersion)
	assert.Equal(t, "1.3", got.Version)
	assert.False(t, got.IsDateVersion)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got.DateValue)
}

func TestDetectBuildExplicit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		want  string
	}{
		{"Palworld v0.6.6 Build 12345-CODEX", "12345"},
		{"Game Steam Build 98765", "98765"},
		{"Game b1337", "1337"},
		{"Game #4021984", "4021984"},
		{"Game (20250115123)", "20250115123"},
		{"Game [build 5511]", "5511"},
		{"Game _b7788_ repack", "7788"},
	}

	for _, tc := range cases {
		got := DetectBuild(tc.title)
		assert.True(t, got.Found, "title %q", tc.title)
		assert.Equal(t, tc.want, got.Build)
	}
}

func TestDetectBuildRejectsPlausibleYear(t *testing.T) {
	t.Parallel()

	assert.False(t, DetectBuild("Game 2024").Found)
	assert.False(t, DetectBuild("Game release 2019").Found)
	// below the year window a 4-digit run is a legitimate build
	assert.Equal(t, "1337", DetectBuild("Game b1337").Build)
}

func TestDetectBuildDateDisambiguation(t *testing.T) {
	t.Parallel()

	// explicit marker wins over the bare date-looking run
	got := DetectBuild("Game v20250929 Build 12345")
	assert.True(t, got.Found)
	assert.Equal(t, "12345", got.Build)

	// bare 8-digit run that decodes as a date is suppressed when the title
	// carries a date-version pattern elsewhere
	assert.False(t, DetectBuild("Game v25-01-15 20250115").Found)

	// without any date pattern in the title, the bare run stays a build but
	// is flagged date-based
	bare := DetectBuild("Game 20250929")
	assert.True(t, bare.Found)
	assert.Equal(t, "20250929", bare.Build)
	assert.True(t, bare.IsDateBasedBuild)
}

func TestDetectBuildPrefersExplicit(t *testing.T) {
	t.Parallel()

	got := DetectBuild("Game 123456789 build 4444")
	assert.True(t, got.Found)
	assert.Equal(t, "4444", got.Build)
	assert.True(t, got.HasPreferredBuild)
}

func TestAnalyzeSuggestions(t *testing.T) {
	t.Parallel()

	both := Analyze("Palworld v0.6.6 Build 12345")
	assert.Equal(t, "Detected version 0.6.6 and build 12345.", both.Suggestion)

	versionOnly := Analyze("Game v1.2")
	assert.Contains(t, versionOnly.Suggestion, "Detected version 1.2")
	assert.Contains(t, versionOnly.Suggestion, "build")

	buildOnly := Analyze("Game build 55555")
	assert.Contains(t, buildOnly.Suggestion, "Detected build 55555")
	assert.Contains(t, buildOnly.Suggestion, "version")

	neither := Analyze("Just A Title")
	assert.Contains(t, neither.Suggestion, "No version or build detected")
}
