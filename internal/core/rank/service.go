package rank

import (
	"math"
	"sort"

	"shopsearch/internal/core/catalog"
	"shopsearch/internal/logger"
)

const maxRating = 5.0 // fixed scale, not derived from data

// Weights is one scoring profile. Each profile sums to 1.
type Weights struct {
	Relevance  float64
	Rating     float64
	Popularity float64
	Price      float64
}

var (
	defaultWeights = Weights{Relevance: 0.40, Rating: 0.20, Popularity: 0.20, Price: 0.20}
	priceWeights   = Weights{Relevance: 0.20, Rating: 0.10, Popularity: 0.10, Price: 0.60}
	latestWeights  = Weights{Relevance: 0.25, Rating: 0.10, Popularity: 0.60, Price: 0.05}
)

// weightsFor picks the profile for an intent. When both price and latest
// signals are present, latest wins (applied last).
func weightsFor(intent Intent) Weights {
	w := defaultWeights
	if intent.PriceIntent {
		w = priceWeights
	}
	if intent.Latest {
		w = latestWeights
	}
	return w
}

type Breakdown struct {
	Relevance  float64 `json:"relevance"`
	Rating     float64 `json:"rating"`
	Popularity float64 `json:"popularity"`
	Price      float64 `json:"price"`
}

type Result struct {
	Product   catalog.Product `json:"product"`
	Score     float64         `json:"score"`
	Breakdown Breakdown       `json:"breakdown"`
}

type Options struct {
	Limit int
}

type Engine struct {
	log *logger.Logger
}

func NewEngine() *Engine { return &Engine{log: logger.New("RankEngine")} }

// Rank scores every candidate against the query and returns them sorted
// descending, truncated to the limit. Deterministic for a fixed candidate
// set and query.
func (e *Engine) Rank(products []catalog.Product, query string, opts Options) []Result {
	if len(products) == 0 {
		return nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	intent := DetectIntent(query)
	w := weightsFor(intent)
	e.log.LogDebugf("ranking %d candidates (priceIntent=%v latest=%v budget=%v)", len(products), intent.PriceIntent, intent.Latest, intent.Budget)

	maxPrice, maxUnits := 1.0, 1.0
	for _, p := range products {
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
		if u := float64(p.Sales); u > maxUnits {
			maxUnits = u
		}
	}

	results := make([]Result, 0, len(products))
	for _, p := range products {
		rel := relevance(query, p)
		ratingScore := p.Rating / maxRating
		popularityScore := float64(p.Sales) / maxUnits
		priceScore := 1 - p.Price/maxPrice

		final := rel*w.Relevance + ratingScore*w.Rating + popularityScore*w.Popularity + priceScore*w.Price

		if intent.Budget > 0 && p.Price <= intent.Budget {
			final *= 1.2 // in-budget boost
		}
		if p.Stock <= 0 {
			final *= 0.1 // out-of-stock penalty, after the boost
		}

		results = append(results, Result{
			Product: p,
			Score:   round(final, 6),
			Breakdown: Breakdown{
				Relevance:  round(rel, 4),
				Rating:     round(ratingScore, 4),
				Popularity: round(popularityScore, 4),
				Price:      round(priceScore, 4),
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
