package scrape

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors holds the ordered extraction strategies. Each list is tried in
// order; the first strategy that yields a value wins.
type Selectors struct {
	Containers []string `yaml:"containers"`
	Title      []string `yaml:"title"`
	Price      []string `yaml:"price"`
	Rating     []string `yaml:"rating"`
}

// DefaultSelectors covers the common marketplace listing markups.
func DefaultSelectors() Selectors {
	return Selectors{
		Containers: []string{
			".product-tuple-listing",
			".s-result-item",
			".product",
			".product-card",
			".search-result-product",
			`[data-testid="product-card"]`,
		},
		Title: []string{
			".product-title",
			".title",
			".prod-title",
			"h2",
			"h3",
			`[data-testid="product-title"]`,
		},
		Price: []string{
			".product-price",
			".price",
			".prod-price",
			".final-price",
			".price-number",
		},
		Rating: []string{
			".product-rating-count",
			".rating",
			".stars",
		},
	}
}

// LoadSelectors reads a YAML selector file. Lists left empty in the file
// keep their defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	b, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("read selector file: %w", err)
	}
	var file Selectors
	if err := yaml.Unmarshal(b, &file); err != nil {
		return sel, fmt.Errorf("parse selector file: %w", err)
	}
	if len(file.Containers) > 0 {
		sel.Containers = file.Containers
	}
	if len(file.Title) > 0 {
		sel.Title = file.Title
	}
	if len(file.Price) > 0 {
		sel.Price = file.Price
	}
	if len(file.Rating) > 0 {
		sel.Rating = file.Rating
	}
	return sel, nil
}
