package title

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// FuzzyMatch is a candidate title that scored at or above the similarity
// threshold for a query.
type FuzzyMatch struct {
	Title      string
	Similarity float32
}

// Similarity scores two cleaned titles with Jaro-Winkler similarity.
// Jaro-Winkler weights matching prefixes heavily, which suits game titles:
// listings usually get the start of the name right and diverge in the
// subtitle or tag noise at the end.
func Similarity(a, b string) float32 {
	return edlib.JaroWinklerSimilarity(Clean(a, false), Clean(b, false))
}

// Match returns the candidates whose cleaned form scores at least min
// against the cleaned query, best first. Exact matches are included.
func Match(query string, candidates []string, min float32) []FuzzyMatch {
	q := Clean(query, false)

	var out []FuzzyMatch
	for _, cand := range candidates {
		score := edlib.JaroWinklerSimilarity(q, Clean(cand, false))
		if score >= min {
			out = append(out, FuzzyMatch{Title: cand, Similarity: score})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}
