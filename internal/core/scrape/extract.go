package scrape

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nonNumericRe = regexp.MustCompile(`[^0-9.]`)

// FillPolicy supplies values for fields the markup does not carry.
// Injectable so tests can pin deterministic fills.
type FillPolicy struct {
	Price  func() float64
	Rating func() float64
	Stock  func() int
}

// RandomFill mirrors the listing sites' missing-data reality: bounded
// pseudo-random values in plausible ranges.
func RandomFill() FillPolicy {
	return FillPolicy{
		Price:  func() float64 { return float64(rand.Intn(500) + 1) },
		Rating: func() float64 { return float64(int((rand.Float64()*2+3)*10)) / 10 },
		Stock:  func() int { return rand.Intn(200) },
	}
}

// extractTitle tries the ordered title selectors, then falls back to the
// first non-blank line of the container's text. Empty means skip the listing.
func extractTitle(el *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(el.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	for _, line := range strings.Split(el.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// extractPrice returns the first selector match parsed to a non-negative
// number, or 0 when nothing usable matched.
func extractPrice(el *goquery.Selection, selectors []string) float64 {
	for _, sel := range selectors {
		text := strings.TrimSpace(el.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if n, err := strconv.ParseFloat(nonNumericRe.ReplaceAllString(text, ""), 64); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}

func extractRating(el *goquery.Selection, selectors []string) float64 {
	for _, sel := range selectors {
		text := strings.TrimSpace(el.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if n, err := strconv.ParseFloat(nonNumericRe.ReplaceAllString(text, ""), 64); err == nil {
			return n
		}
	}
	return 0
}

func extractDescription(el *goquery.Selection, category string) string {
	if text := strings.TrimSpace(el.Find("p").First().Text()); text != "" {
		return text
	}
	return fmt.Sprintf("High-quality %s item.", category)
}

// extractItem applies the extractor set to one listing container. The second
// return is false when the container yielded no title and must be skipped.
func (s *Service) extractItem(el *goquery.Selection, category, source string) (Item, bool) {
	title := extractTitle(el, s.selectors.Title)
	if title == "" {
		return Item{}, false
	}

	price := extractPrice(el, s.selectors.Price)
	if price <= 0 {
		price = s.fill.Price()
	}
	rating := extractRating(el, s.selectors.Rating)
	if rating <= 0 {
		rating = s.fill.Rating()
	}

	return Item{
		Title:       title,
		Description: extractDescription(el, category),
		Price:       price,
		Rating:      rating,
		Stock:       s.fill.Stock(),
		Category:    category,
		Metadata:    map[string]string{},
		Source:      source,
	}, true
}
