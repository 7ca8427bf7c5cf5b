// Package config holds the runtime configuration knobs and the selector
// configuration file handling.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig
	Crawl   CrawlConfig
	Log     LogConfig
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless. The default is
	// visible: a human has to complete the directory login by hand.
	Headless bool // default: false

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// UserAgent overrides the browser's User-Agent header when non-empty.
	UserAgent string

	// Stealth injects stealth JS (masks navigator.webdriver etc.) before
	// every navigation.
	Stealth bool // default: false
}

// CrawlConfig controls crawl behavior.
type CrawlConfig struct {
	// BaseURL is the directory results page the crawl starts from.
	BaseURL string

	// OutputFile is the CSV path results are flushed to.
	OutputFile string // default: "contacts.csv"

	// SelectorsFile is the selector configuration path.
	SelectorsFile string // default: "selectors.json"

	// MaxPages is the results-page ceiling.
	MaxPages int // default: 50

	// RowDelay is the politeness pause between detail visits.
	RowDelay time.Duration // default: 1s

	// PageDelay is the pause after activating the next-page control.
	PageDelay time.Duration // default: 2s

	// NavTimeout is the per-navigation deadline.
	NavTimeout time.Duration // default: 30s

	// LoginTimeout bounds the wait for the human-completed login.
	LoginTimeout time.Duration // default: 5m

	// FlushEvery is the checkpoint cadence in accumulated records.
	FlushEvery int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:   envBoolOr("DIRCOMB_HEADLESS", false),
			NoSandbox:  envBoolOr("DIRCOMB_NO_SANDBOX", false),
			BrowserBin: os.Getenv("DIRCOMB_BROWSER_BIN"),
			UserAgent:  os.Getenv("DIRCOMB_USER_AGENT"),
			Stealth:    envBoolOr("DIRCOMB_STEALTH", false),
		},
		Crawl: CrawlConfig{
			BaseURL:       os.Getenv("DIRCOMB_BASE_URL"),
			OutputFile:    envOr("DIRCOMB_OUTPUT", "contacts.csv"),
			SelectorsFile: envOr("DIRCOMB_SELECTORS", "selectors.json"),
			MaxPages:      envIntOr("DIRCOMB_MAX_PAGES", 50),
			RowDelay:      envDurationOr("DIRCOMB_ROW_DELAY", time.Second),
			PageDelay:     envDurationOr("DIRCOMB_PAGE_DELAY", 2*time.Second),
			NavTimeout:    envDurationOr("DIRCOMB_NAV_TIMEOUT", 30*time.Second),
			LoginTimeout:  envDurationOr("DIRCOMB_LOGIN_TIMEOUT", 5*time.Minute),
			FlushEvery:    envIntOr("DIRCOMB_FLUSH_EVERY", 10),
		},
		Log: LogConfig{
			Level:  envOr("DIRCOMB_LOG_LEVEL", "info"),
			Format: envOr("DIRCOMB_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
