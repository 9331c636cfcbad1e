package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Browser  BrowserConfig
	Scraper  ScraperConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
	Latitude       float64
	Longitude      float64
	CookieFile     string
}

// ScraperConfig carries the wait heuristics of the extraction pipeline.
// None of them encode a contract beyond "enough time for dynamic content",
// so all of them are tunable from the environment.
type ScraperConfig struct {
	MaxReviews           int
	NavigationTimeout    time.Duration
	ChallengeTimeout     time.Duration
	ChallengePoll        time.Duration
	StabilizeDelay       time.Duration
	SettleDelay          time.Duration
	GalleryLoadDelay     time.Duration
	FieldTimeout         time.Duration
	ShortTimeout         time.Duration
	DiscountPriceTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	MaxConnLife time.Duration
	MaxConnIdle time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Asia/Seoul"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "ko-KR"),
			Latitude:       getFloatOrDefault("BROWSER_GEO_LATITUDE", 37.5665),
			Longitude:      getFloatOrDefault("BROWSER_GEO_LONGITUDE", 126.9780),
			CookieFile:     getEnvOrDefault("BROWSER_COOKIE_FILE", ""),
		},
		Scraper: ScraperConfig{
			MaxReviews:           getIntOrDefault("SCRAPER_MAX_REVIEWS", 30),
			NavigationTimeout:    getDurationOrDefault("SCRAPER_NAVIGATION_TIMEOUT", 60*time.Second),
			ChallengeTimeout:     getDurationOrDefault("SCRAPER_CHALLENGE_TIMEOUT", 30*time.Second),
			ChallengePoll:        getDurationOrDefault("SCRAPER_CHALLENGE_POLL", 500*time.Millisecond),
			StabilizeDelay:       getDurationOrDefault("SCRAPER_STABILIZE_DELAY", 2*time.Second),
			SettleDelay:          getDurationOrDefault("SCRAPER_SETTLE_DELAY", 2*time.Second),
			GalleryLoadDelay:     getDurationOrDefault("SCRAPER_GALLERY_LOAD_DELAY", 3*time.Second),
			FieldTimeout:         getDurationOrDefault("SCRAPER_FIELD_TIMEOUT", 10*time.Second),
			ShortTimeout:         getDurationOrDefault("SCRAPER_SHORT_TIMEOUT", 1*time.Second),
			DiscountPriceTimeout: getDurationOrDefault("SCRAPER_DISCOUNT_PRICE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			Host:        getEnvOrDefault("DB_HOST", "localhost"),
			Port:        getIntOrDefault("DB_PORT", 5432),
			User:        getEnvOrDefault("DB_USER", "postgres"),
			Password:    getEnvOrDefault("DB_PASSWORD", ""),
			DBName:      getEnvOrDefault("DB_NAME", "creait"),
			SSLMode:     getEnvOrDefault("DB_SSL_MODE", "disable"),
			MaxConns:    int32(getIntOrDefault("DB_MAX_CONNS", 4)),
			MinConns:    int32(getIntOrDefault("DB_MIN_CONNS", 1)),
			MaxConnLife: getDurationOrDefault("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdle: getDurationOrDefault("DB_MAX_CONN_IDLE", 30*time.Minute),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.MaxReviews < 0 {
		return fmt.Errorf("SCRAPER_MAX_REVIEWS cannot be negative")
	}

	if c.Scraper.ChallengePoll <= 0 {
		return fmt.Errorf("SCRAPER_CHALLENGE_POLL must be positive")
	}

	if c.Browser.ViewportWidth < 1 || c.Browser.ViewportHeight < 1 {
		return fmt.Errorf("browser viewport dimensions must be positive")
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("DB_MAX_CONNS cannot be less than DB_MIN_CONNS")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
