package rank

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent carries the ranking signals derived from a free-text query.
// Budget 0 means no ceiling was detected.
type Intent struct {
	PriceIntent bool
	Latest      bool
	Budget      float64
}

var (
	priceIntentRe = regexp.MustCompile(`\b(cheap|budget|low price|sasta)\b`)
	latestRe      = regexp.MustCompile(`\b(latest|new|newest|just out)\b`)
	// "under 50k", "under 50000", or a bare "50k"/"2m" token.
	budgetRe = regexp.MustCompile(`under\s*([0-9,]+\s*[km]?|[0-9]+\s*[km])|\b([0-9,]+\s*[km])\b`)
)

// DetectIntent parses budget ceilings and freshness signals out of a query.
func DetectIntent(query string) Intent {
	q := strings.ToLower(query)
	intent := Intent{
		PriceIntent: priceIntentRe.MatchString(q),
		Latest:      latestRe.MatchString(q),
	}

	m := budgetRe.FindStringSubmatch(q)
	if m == nil {
		return intent
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	raw = strings.NewReplacer(",", "", " ", "").Replace(raw)
	if raw == "" {
		return intent
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(raw, "k"):
		mult, raw = 1_000, strings.TrimSuffix(raw, "k")
	case strings.HasSuffix(raw, "m"):
		mult, raw = 1_000_000, strings.TrimSuffix(raw, "m")
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && n > 0 {
		intent.Budget = n * mult
	}
	return intent
}
