package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopsearch/internal/logger"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	defaultBaseURL = "https://www.snapdeal.com/search?keyword={category}&page={page}"

	// Heuristic fallback bounds when no container selector matches.
	heuristicMinTextLen = 50
	heuristicMaxNodes   = 200
)

// Item is one scraped listing.
type Item struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Rating      float64           `json:"rating"`
	Stock       int               `json:"stock"`
	Category    string            `json:"category"`
	Metadata    map[string]string `json:"metadata"`
	Source      string            `json:"source"`
}

// Progress is reported once per fetched page.
type Progress struct {
	Category      string `json:"category"`
	Page          int    `json:"page"`
	FoundThisPage int    `json:"foundThisPage"`
	TotalSoFar    int    `json:"totalSoFar"`
}

// Options control one category scrape.
type Options struct {
	TotalPages     int
	PerPageDelayMs int
	// BaseURL is a template with {category} and {page}. Empty uses the
	// default search endpoint.
	BaseURL    string
	OnProgress func(Progress)
}

type Service struct {
	log       *logger.Logger
	client    *http.Client
	selectors Selectors
	fill      FillPolicy
}

func NewService(selectors Selectors, fill FillPolicy) *Service {
	return &Service{
		log:       logger.New("ScrapeService"),
		client:    &http.Client{Timeout: fetchTimeout},
		selectors: selectors,
		fill:      fill,
	}
}

// Scrape walks one category's pages in order. A page that fails to fetch or
// parse is logged and skipped; it never aborts the category. Pages are
// strictly sequential with a politeness delay between them.
func (s *Service) Scrape(ctx context.Context, category string, opts Options) []Item {
	totalPages := opts.TotalPages
	if totalPages <= 0 {
		totalPages = 5
	}
	delay := time.Duration(opts.PerPageDelayMs) * time.Millisecond

	var scraped []Item
	totalSoFar := 0

	for page := 1; page <= totalPages; page++ {
		pageURL := buildURL(opts.BaseURL, category, page)

		items, err := s.scrapePage(ctx, pageURL, category)
		if err != nil {
			s.log.LogWarnf("scrape error category=%s page=%d: %v", category, page, err)
			continue
		}

		scraped = append(scraped, items...)
		totalSoFar += len(items)

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Category: category, Page: page, FoundThisPage: len(items), TotalSoFar: totalSoFar})
		}

		if page < totalPages && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return scraped
			}
		}
	}

	return scraped
}

func (s *Service) scrapePage(ctx context.Context, pageURL, category string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch: status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var items []Item
	s.containers(doc).Each(func(_ int, el *goquery.Selection) {
		if item, ok := s.extractItem(el, category, pageURL); ok {
			items = append(items, item)
		}
	})
	return items, nil
}

// containers tries the ordered container strategies, stopping at the first
// that matches anything, then falls back to structural elements with enough
// text to plausibly be a listing.
func (s *Service) containers(doc *goquery.Document) *goquery.Selection {
	for _, sel := range s.selectors.Containers {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	fallback := doc.Find("article, li, div").FilterFunction(func(_ int, el *goquery.Selection) bool {
		return len(strings.TrimSpace(el.Text())) > heuristicMinTextLen
	})
	if fallback.Length() > heuristicMaxNodes {
		fallback = fallback.Slice(0, heuristicMaxNodes)
	}
	return fallback
}

func buildURL(template, category string, page int) string {
	if template == "" {
		template = defaultBaseURL
	}
	out := strings.ReplaceAll(template, "{category}", url.QueryEscape(category))
	return strings.ReplaceAll(out, "{page}", fmt.Sprintf("%d", page))
}
