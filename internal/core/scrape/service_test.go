package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func listingPage(count int, prefix string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, `<div class="product-card"><h2>%s %d</h2><span class="price">%d00</span><span class="rating">4.2</span><p>Listing number %d</p></div>`, prefix, i, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestScrapeTwoPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		fmt.Fprint(w, listingPage(10, "Laptop P"+page+" Item"))
	}))
	defer srv.Close()

	var progress []Progress
	items := NewService(DefaultSelectors(), fixedFill()).Scrape(context.Background(), "laptops", Options{
		TotalPages:     2,
		PerPageDelayMs: 0,
		BaseURL:        srv.URL + "/search?cat={category}&page={page}",
		OnProgress:     func(p Progress) { progress = append(progress, p) },
	})

	if len(items) != 20 {
		t.Fatalf("got %d items, want 20", len(items))
	}
	if len(progress) != 2 {
		t.Fatalf("got %d progress events, want 2", len(progress))
	}
	if progress[0].Page != 1 || progress[0].FoundThisPage != 10 || progress[0].TotalSoFar != 10 {
		t.Fatalf("page 1 progress = %+v", progress[0])
	}
	if progress[1].Page != 2 || progress[1].FoundThisPage != 10 || progress[1].TotalSoFar != 20 {
		t.Fatalf("page 2 progress = %+v", progress[1])
	}
	for _, it := range items {
		if it.Category != "laptops" {
			t.Fatalf("item category = %q", it.Category)
		}
		if it.Title == "" {
			t.Fatalf("item without title survived")
		}
	}
}

func TestScrapePageFailureIsIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, listingPage(5, "Phone"))
	}))
	defer srv.Close()

	var progress []Progress
	items := NewService(DefaultSelectors(), fixedFill()).Scrape(context.Background(), "mobiles", Options{
		TotalPages:     2,
		PerPageDelayMs: 0,
		BaseURL:        srv.URL + "/search?cat={category}&page={page}",
		OnProgress:     func(p Progress) { progress = append(progress, p) },
	})

	if len(items) != 5 {
		t.Fatalf("got %d items, want 5 from the surviving page", len(items))
	}
	if len(progress) != 1 || progress[0].Page != 2 || progress[0].TotalSoFar != 5 {
		t.Fatalf("progress = %+v, want a single page-2 event", progress)
	}
}

func TestScrapeUnreachableHostYieldsNothing(t *testing.T) {
	items := NewService(DefaultSelectors(), fixedFill()).Scrape(context.Background(), "mobiles", Options{
		TotalPages:     2,
		PerPageDelayMs: 0,
		BaseURL:        "http://127.0.0.1:1/search?cat={category}&page={page}",
	})
	if len(items) != 0 {
		t.Fatalf("got %d items from an unreachable host", len(items))
	}
}

func TestScrapeHeuristicContainerFallback(t *testing.T) {
	page := `<html><body><ul>` +
		`<li>Artisan Keyboard Deluxe
some long marketing copy that easily clears the length threshold for listings</li>` +
		`<li>Mechanical Mouse Pro
another long marketing blurb that also clears the length threshold comfortably</li>` +
		`<li>no</li>` +
		`</ul></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	items := NewService(DefaultSelectors(), fixedFill()).Scrape(context.Background(), "accessories", Options{
		TotalPages:     1,
		PerPageDelayMs: 0,
		BaseURL:        srv.URL + "/?page={page}",
	})

	titles := map[string]bool{}
	for _, it := range items {
		titles[it.Title] = true
	}
	if !titles["Artisan Keyboard Deluxe"] || !titles["Mechanical Mouse Pro"] {
		t.Fatalf("heuristic fallback missed listings, got titles %v", titles)
	}
	if titles["no"] {
		t.Fatalf("short container passed the length threshold")
	}
}

func TestBuildURL(t *testing.T) {
	got := buildURL("http://x/{category}/p/{page}", "head phones", 3)
	if got != "http://x/head+phones/p/3" {
		t.Fatalf("buildURL = %q", got)
	}
	if got := buildURL("", "tv", 1); !strings.Contains(got, "keyword=tv") || !strings.Contains(got, "page=1") {
		t.Fatalf("default template = %q", got)
	}
}
