package title

import "regexp"

// Literal overrides patch individual titles whose cleaned form would
// otherwise collide or stay ambiguous. Kept as a table rather than inline
// logic so the general pipeline stays auditable.
//
// The entries run after bracket/tag stripping but before number-word and
// roman-numeral normalization, so an override can rewrite a bare digit that
// the generic rules would leave ambiguous.
var overrides = []struct {
	re  *regexp.Regexp
	out string
}{
	// "Dragon Ball Sparking 0" ends in a bare 0 the numeral rules can't
	// resolve; the game is titled "Zero".
	{regexp.MustCompile(`\bdragon ball[:!]? sparking!? 0\b`), "dragon ball sparking zero"},
}

func applyOverrides(s string) string {
	for _, o := range overrides {
		s = o.re.ReplaceAllString(s, o.out)
	}
	return s
}
