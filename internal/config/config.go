package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultNewsAPIBaseURL = "https://newsapi.org/v2"

type Config struct {
	// Server
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile   string // terminal client only, empty = no logs

	CatalogFile    string        // path to the catalog YAML, empty = embedded default catalog
	ReloadInterval time.Duration // interval to reload the catalog (default: 1h)

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict /reload and /metrics to these networks
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	RateLimitRPS float64  // per-client requests per second on the news routes, 0 = unlimited
	RateBurst    int

	// Client
	Source       string        // "catalog" | "newsapi" | "rss"
	FetchTimeout time.Duration // bound on every fetch (default: 10s)

	NewsAPIBaseURL  string
	NewsAPIKey      string
	NewsAPICountry  string
	NewsAPIPageSize int
	NewsAPIRate     float64 // requests per second, 0 = unlimited

	RSSFeedsFile     string
	RSSConcurrency   int
	RSSMaxItems      int
	CarouselSize     int
	CarouselInterval time.Duration
}

// Load reads the configuration from the environment.
// A .env file in the working directory (or NEWSDESK_ENV_FILE) is applied
// first and never overrides variables that are already set.
func Load() *Config {
	loadDotEnv()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NEWSDESK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NEWSDESK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NEWSDESK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NEWSDESK_PRETTY_LOG", true),
		LogFile:   getenv("NEWSDESK_LOG_FILE", ""),

		// Catalog
		CatalogFile:    getenv("NEWSDESK_CATALOG_FILE", ""),
		ReloadInterval: mustDuration("NEWSDESK_RELOAD_INTERVAL", time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NEWSDESK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("NEWSDESK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NEWSDESK_TRUST_PROXY", false),
		RateLimitRPS: getenvFloat("NEWSDESK_RATE_LIMIT_RPS", 10),
		RateBurst:    getenvInt("NEWSDESK_RATE_LIMIT_BURST", 20),

		// Client
		Source:       strings.ToLower(getenv("NEWSDESK_SOURCE", "catalog")),
		FetchTimeout: mustDuration("NEWSDESK_FETCH_TIMEOUT", 10*time.Second),

		NewsAPIBaseURL:  getenv("NEWSDESK_NEWSAPI_BASE_URL", defaultNewsAPIBaseURL),
		NewsAPIKey:      getenv("NEWSDESK_NEWSAPI_KEY", ""),
		NewsAPICountry:  getenv("NEWSDESK_NEWSAPI_COUNTRY", "us"),
		NewsAPIPageSize: getenvInt("NEWSDESK_NEWSAPI_PAGE_SIZE", 20),
		NewsAPIRate:     getenvFloat("NEWSDESK_NEWSAPI_RATE", 1),

		RSSFeedsFile:     getenv("NEWSDESK_RSS_FEEDS_FILE", ""),
		RSSConcurrency:   getenvInt("NEWSDESK_RSS_CONCURRENCY", 4),
		RSSMaxItems:      getenvInt("NEWSDESK_RSS_MAX_ITEMS", 20),
		CarouselSize:     getenvInt("NEWSDESK_CAROUSEL_SIZE", 5),
		CarouselInterval: mustDuration("NEWSDESK_CAROUSEL_INTERVAL", 5*time.Second),
	}

	switch cfg.Source {
	case "catalog":
	case "newsapi":
		// A self-hosted endpoint (e.g. newsdesk-server) needs no key
		if cfg.NewsAPIBaseURL == defaultNewsAPIBaseURL {
			cfg.NewsAPIKey = requireEnv("NEWSDESK_NEWSAPI_KEY")
		}
	case "rss":
		cfg.RSSFeedsFile = requireEnv("NEWSDESK_RSS_FEEDS_FILE")
	default:
		panic(fmt.Sprintf("❌ FATAL: NEWSDESK_SOURCE must be catalog, newsapi or rss, got %q", cfg.Source))
	}

	if cfg.FetchTimeout <= 0 {
		panic("❌ FATAL: NEWSDESK_FETCH_TIMEOUT must be positive")
	}
	if cfg.CarouselSize <= 0 {
		panic("❌ FATAL: NEWSDESK_CAROUSEL_SIZE must be positive")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" && cfg.LogFile == "" {
		cfgCopy := *cfg
		if cfgCopy.NewsAPIKey != "" {
			cfgCopy.NewsAPIKey = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadDotEnv() {
	if path := os.Getenv("NEWSDESK_ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(fmt.Sprintf("❌ FATAL: cannot load env file %s: %v", path, err))
		}
		return
	}
	// Optional
	_ = godotenv.Load()
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
