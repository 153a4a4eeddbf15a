package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsReleaseNoise(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"scene tag and year", "Palworld v0.6.6 Build 12345-CODEX (2024)", "palworld"},
		{"repack brackets", "Hogwarts Legacy [FitGirl Repack]", "hogwarts legacy"},
		{"free download suffix", "Stardew Valley Free Download Pre-Installed", "stardew valley"},
		{"dlc phrases", "Elden Ring All DLCs Bonus Content", "elden ring"},
		{"character pack", "Tekken 8 Character Pack 3", "tekken 8"},
		{"scene suffix mid string", "Baldurs Gate 3-RUNE Update", "baldurs gate 3 update"},
		{"trademark glyphs", "Pokémon™ Arceus®", "pokemon arceus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.in, false))
		})
	}
}

func TestCleanWholeWordOnly(t *testing.T) {
	t.Parallel()

	// "rune" is in the noise list but must not bite into a longer word.
	assert.Equal(t, "runescape dragonwilds", Clean("Runescape Dragonwilds", false))
	// "empress" must not corrupt "empresses"
	assert.Equal(t, "empresses throne", Clean("Empresses Throne", false))
}

func TestCleanNumberNormalization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Final Fantasy VII Remake", "final fantasy 7 remake"},
		{"It Takes Two", "it takes 2"},
		{"The Last of Us Part Two", "the last of us part 2"},
		{"Metal Gear Solid V", "metal gear solid 5"},
		{"Mega Man X", "mega man 10"},
		{"Street Fighter vs. Tekken", "street fighter vs tekken"},
		{"Sonic and Knuckles", "sonic & knuckles"},
		{"Lord of the Rings", "lord of rings"},
		{"Assassin's Creed IV: Black Flag", "assassins creed 4 black flag"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Clean(tc.in, false), "input %q", tc.in)
	}
}

func TestCleanRomanFiveNeverMatchesVs(t *testing.T) {
	t.Parallel()

	got := Clean("Game vs Robots", false)
	assert.Equal(t, "game vs robots", got)
	assert.NotContains(t, got, "5")
}

func TestCleanEditionForms(t *testing.T) {
	t.Parallel()

	// search form strips the whole edition vocabulary
	assert.Equal(t, "elden ring", Clean("Elden Ring Deluxe Edition", false))
	// edition-preserving form drops only the literal word "edition"
	assert.Equal(t, "elden ring deluxe", Clean("Elden Ring Deluxe Edition", true))
}

func TestCleanOverrides(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dragon ball sparking zero", Clean("Dragon Ball: Sparking! 0", false))
	assert.Equal(t, "dragon ball sparking zero", Clean("DRAGON BALL Sparking 0-TENOKE", false))
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	titles := []string{
		"Palworld v0.6.6 Build 12345-CODEX (2024)",
		"Final Fantasy VII Remake Intergrade [FitGirl Repack]",
		"Assassin's Creed IV: Black Flag Deluxe Edition",
		"Dragon Ball: Sparking! 0",
		"It Takes Two Free Download",
		"Sonic and Knuckles",
	}

	for _, raw := range titles {
		once := Clean(raw, false)
		assert.Equal(t, once, Clean(once, false), "input %q", raw)
	}
}

func TestCleanPureNoise(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Clean("[FitGirl Repack] (2024)", false))
	assert.Equal(t, "", Clean("", false))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "palworld", Slug("Palworld v0.6.6-CODEX"))
	assert.Equal(t, "sonic-and-knuckles", Slug("Sonic and Knuckles"))
	assert.Equal(t, "assassins-creed-4-black-flag", Slug("Assassin's Creed IV: Black Flag"))
}
