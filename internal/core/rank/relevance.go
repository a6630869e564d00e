package rank

import (
	"strings"

	"shopsearch/internal/core/catalog"

	"github.com/agnivade/levenshtein"
)

// relevance converts the best field distance into a 0..1 score, higher
// better. The 1.2 factor makes middling fuzzy matches fall off faster.
func relevance(query string, p catalog.Product) float64 {
	d := distance(query, p)
	r := 1 - min1(d*1.2)
	if r < 0 {
		return 0
	}
	return r
}

// distance is a normalized lower-is-better match of the query against the
// candidate's text fields: per query token, the best normalized levenshtein
// distance to any field token, averaged over query tokens, best field wins.
func distance(query string, p catalog.Product) float64 {
	qTokens := catalog.Tokenize(query)
	if len(qTokens) == 0 {
		return 1
	}

	fields := []string{p.Title, p.Description, p.Metadata["brand"], p.Metadata["model"]}
	best := 1.0
	for _, field := range fields {
		if field == "" {
			continue
		}
		if d := fieldDistance(qTokens, catalog.Tokenize(field)); d < best {
			best = d
		}
	}
	return best
}

func fieldDistance(qTokens, fTokens []string) float64 {
	if len(fTokens) == 0 {
		return 1
	}
	sum := 0.0
	for _, qt := range qTokens {
		tokenBest := 1.0
		for _, ft := range fTokens {
			if d := tokenDistance(qt, ft); d < tokenBest {
				tokenBest = d
			}
		}
		sum += tokenBest
	}
	return sum / float64(len(qTokens))
}

func tokenDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	// A token containing the other is a strong partial match.
	if strings.Contains(b, a) || strings.Contains(a, b) {
		return 0.1
	}
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 1
	}
	return min1(float64(levenshtein.ComputeDistance(a, b)) / float64(longer))
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
