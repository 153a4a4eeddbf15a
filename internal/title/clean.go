package title

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Noise vocabulary stripped as whole words only. A release-group name that
// happens to be a substring of a real word must never be touched, so every
// entry is matched with \b boundaries.
var noiseWords = []string{
	// release groups
	"codex", "skidrow", "plaza", "empress", "tenoke", "rune", "flt",
	"razor1911", "cpy", "reloaded", "hoodlum", "prophet", "darksiders",
	"fitgirl", "dodi", "elamigos", "goldberg", "chronos", "p2p", "gog",
	// packaging noise
	"repack", "repacks", "cracked", "crack", "denuvoless", "drm free",
	"free download", "pre installed", "pre-installed", "preinstalled",
	"direct link", "direct links", "torrent", "full game", "full version",
	"latest version", "update only", "online multiplayer", "multiplayer",
	"singleplayer", "uncensored", "unlocked",
}

// Edition vocabulary stripped only in the search form; the edition-preserving
// form keeps these so "deluxe" and base releases stay distinguishable.
var editionWords = []string{
	"game of the year", "goty", "deluxe", "ultimate", "definitive",
	"complete", "gold", "premium", "collectors", "anniversary", "supporter",
}

var dlcPhrases = []string{
	"all dlcs", "all dlc", "incl dlc", "including dlc", "season pass",
	"bonus content", "bonus soundtrack", "soundtrack bundle",
	"deluxe pack", "expansion pass",
}

var (
	noiseRe    = regexp.MustCompile(`\b(?:` + strings.Join(escapeAll(noiseWords), `|`) + `)\b`)
	editionsRe = regexp.MustCompile(`\b(?:` + strings.Join(escapeAll(editionWords), `|`) + `)\b`)
	dlcRe      = regexp.MustCompile(`\b(?:` + strings.Join(escapeAll(dlcPhrases), `|`) + `)\b`)
	// "character pack 3" and similar numbered packs
	packRe = regexp.MustCompile(`\b(?:character|costume|content) pack \d+\b`)

	// Version stripping runs longest-to-shortest: the dotted tagged form must
	// be consumed whole before a shorter sub-pattern can bite into it.
	versionRes = []*regexp.Regexp{
		regexp.MustCompile(`\bv\d+(?:\.\d+)+(?:[-_][0-9a-z]+)*\b`), // v1.2.3.4-codex
		regexp.MustCompile(`\bv\d+\.\d+\b`),                        // v1.2
		regexp.MustCompile(`\bversion \d+(?:\.\d+)*\b`),
		regexp.MustCompile(`\bbuild \d+\b`),
		regexp.MustCompile(`\bb\d{4,}\b`),
	}
	editionRe = regexp.MustCompile(`\bedition\b`)

	yearTagRe     = regexp.MustCompile(`[(\[]20\d{2}[)\]]`)
	sceneSuffixRe = regexp.MustCompile(`-[0-9a-z]{3,}\b`)
	bracketsRe    = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)
	trademarkRe   = regexp.MustCompile(`[™®©]`)

	// Roman numeral v/x need a boundary that refuses trailing word characters,
	// otherwise "vs" reads as the numeral 5.
	romanReplacements = []struct {
		re  *regexp.Regexp
		out string
	}{
		{regexp.MustCompile(`\bviii\b`), "8"},
		{regexp.MustCompile(`\bvii\b`), "7"},
		{regexp.MustCompile(`\bvi\b`), "6"},
		{regexp.MustCompile(`\biv\b`), "4"},
		{regexp.MustCompile(`\bix\b`), "9"},
		{regexp.MustCompile(`\biii\b`), "3"},
		{regexp.MustCompile(`\bii\b`), "2"},
		{regexp.MustCompile(`(^|\s)v($|\s)`), "${1}5${2}"},
		{regexp.MustCompile(`(^|\s)x($|\s)`), "${1}10${2}"},
	}

	numberWords = []struct {
		re  *regexp.Regexp
		out string
	}{
		{regexp.MustCompile(`\bone\b`), "1"},
		{regexp.MustCompile(`\btwo\b`), "2"},
		{regexp.MustCompile(`\bthree\b`), "3"},
		{regexp.MustCompile(`\bfour\b`), "4"},
		{regexp.MustCompile(`\bfive\b`), "5"},
		{regexp.MustCompile(`\bsix\b`), "6"},
		{regexp.MustCompile(`\bseven\b`), "7"},
		{regexp.MustCompile(`\beight\b`), "8"},
		{regexp.MustCompile(`\bnine\b`), "9"},
	}

	andRe        = regexp.MustCompile(`\band\b`)
	vsRe         = regexp.MustCompile(`\bvs\.?\b`)
	ofTheRe      = regexp.MustCompile(`\bof the\b`)
	apostropheRe = regexp.MustCompile(`['’]`)
	dashColonRe  = regexp.MustCompile(`[-–—_:]`)
	sweepRe      = regexp.MustCompile(`[^a-z0-9& ]`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

func escapeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.QuoteMeta(w))
	}
	return out
}

// Clean strips scraped-listing noise from a raw title and returns a lowercase,
// whitespace-collapsed form suitable for cross-source matching and display.
//
// With preserveEdition=false the search form is produced: edition words and
// every version/build marker are removed. With preserveEdition=true only the
// literal word "edition" is dropped and version markers are kept, since
// editions are partly distinguished by version.
//
// The pipeline is lossy and one-directional; it never errors. Pure-noise
// input collapses to an empty string.
func Clean(title string, preserveEdition bool) string {
	s := strings.ToLower(title)
	s = foldDiacritics(s)

	s = noiseRe.ReplaceAllString(s, " ")
	s = dlcRe.ReplaceAllString(s, " ")
	s = packRe.ReplaceAllString(s, " ")

	if preserveEdition {
		s = editionRe.ReplaceAllString(s, " ")
	} else {
		for _, re := range versionRes {
			s = re.ReplaceAllString(s, " ")
		}
		s = editionsRe.ReplaceAllString(s, " ")
		s = editionRe.ReplaceAllString(s, " ")
	}

	// Year tags go before generic brackets so a year is never confused with
	// unrelated bracketed content, and after version stripping so date-like
	// versions aren't mistaken for years.
	s = yearTagRe.ReplaceAllString(s, " ")
	s = sceneSuffixRe.ReplaceAllString(s, " ")
	s = bracketsRe.ReplaceAllString(s, " ")
	s = trademarkRe.ReplaceAllString(s, " ")

	s = applyOverrides(s)

	for _, r := range romanReplacements {
		s = r.re.ReplaceAllString(s, r.out)
	}
	for _, n := range numberWords {
		s = n.re.ReplaceAllString(s, n.out)
	}

	s = andRe.ReplaceAllString(s, "&")
	s = vsRe.ReplaceAllString(s, "vs")
	s = ofTheRe.ReplaceAllString(s, "of")

	s = apostropheRe.ReplaceAllString(s, "")
	s = dashColonRe.ReplaceAllString(s, " ")
	s = sweepRe.ReplaceAllString(s, "")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Slug converts a cleaned title into the canonical catalog ID.
func Slug(title string) string {
	clean := Clean(title, false)
	clean = strings.ReplaceAll(clean, "&", "and")
	clean = spacesRe.ReplaceAllString(clean, " ")
	return strings.ReplaceAll(strings.TrimSpace(clean), " ", "-")
}

// foldDiacritics strips combining marks so "Pokémon" and "Pokemon" produce
// the same cleaned title.
func foldDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if folded, _, err := transform.String(t, s); err == nil {
		return folded
	}
	return s
}
