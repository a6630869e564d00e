package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	RedisAddr     string
	RedisPassword string

	// AdminToken guards the /admin surface. Empty disables the check.
	AdminToken string

	DefaultCategories  []string
	DefaultTotalPages  int
	DefaultPageDelayMs int
	DefaultPersist     bool

	// ScrapeBaseURL is a template with {category} and {page} placeholders.
	// Empty means the built-in search endpoint.
	ScrapeBaseURL string

	// SelectorFile optionally points at a YAML file overriding the
	// extraction selector strategies.
	SelectorFile string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:        getenv("APP_ENV", "development"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8081"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AdminToken: os.Getenv("ADMIN_TOKEN"),

		DefaultCategories:  getenvList("SCRAPE_CATEGORIES", []string{"mobiles", "laptops", "headphones"}),
		DefaultTotalPages:  getenvInt("SCRAPE_TOTAL_PAGES", 5),
		DefaultPageDelayMs: getenvInt("SCRAPE_PAGE_DELAY_MS", 800),
		DefaultPersist:     getenvBool("SCRAPE_PERSIST", true),

		ScrapeBaseURL: os.Getenv("SCRAPE_BASE_URL"),
		SelectorFile:  os.Getenv("SCRAPE_SELECTOR_FILE"),
	}
	return cfg
}
