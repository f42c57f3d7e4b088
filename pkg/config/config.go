package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// SSOT: every environment variable is read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis (optional price-history cache)
	Redis RedisConfig

	// Market data
	MarketData MarketDataConfig

	// Report defaults
	Report ReportConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration. The cache is opt-in: report runs
// behave identically without it, they just re-fetch daily history.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// MarketDataConfig selects and configures the daily price history source.
type MarketDataConfig struct {
	Source string // "yahoo" or "alpaca"

	YahooBaseURL        string
	YahooRequestsPerSec int

	AlpacaAPIKey    string
	AlpacaAPISecret string
}

// ReportConfig holds run-level defaults for report generation. Command-line
// flags override these per run.
type ReportConfig struct {
	RecommendationKey string
	MinMarketCap      float64
	HistoryStart      time.Time
	OutputDir         string
	CacheTTL          time.Duration
	Schedule          string
}

// Load reads configuration from environment variables.
// SSOT: only this function calls os.Getenv().
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Market data
		MarketData: MarketDataConfig{
			Source:              getEnv("MARKET_DATA_SOURCE", "yahoo"),
			YahooBaseURL:        getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			YahooRequestsPerSec: getEnvAsInt("YAHOO_REQUESTS_PER_SEC", 5),
			AlpacaAPIKey:        getEnv("ALPACA_API_KEY", ""),
			AlpacaAPISecret:     getEnv("ALPACA_API_SECRET", ""),
		},

		// Report defaults
		Report: ReportConfig{
			RecommendationKey: getEnv("REPORT_REC_KEY", "strong_buy"),
			MinMarketCap:      getEnvAsFloat("REPORT_MIN_MARKET_CAP", 20.0),
			HistoryStart:      getEnvAsDate("REPORT_HISTORY_START", "2024-01-01"),
			OutputDir:         getEnv("REPORT_OUTPUT_DIR", "."),
			CacheTTL:          getEnvAsDuration("REPORT_CACHE_TTL", "24h"),
			Schedule:          getEnv("REPORT_SCHEDULE", "0 0 17 * * MON-FRI"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.MarketData.Source != "yahoo" && c.MarketData.Source != "alpaca" {
		return fmt.Errorf("MARKET_DATA_SOURCE must be one of: yahoo, alpaca")
	}

	if c.MarketData.Source == "alpaca" && (c.MarketData.AlpacaAPIKey == "" || c.MarketData.AlpacaAPISecret == "") {
		return fmt.Errorf("ALPACA_API_KEY and ALPACA_API_SECRET are required when MARKET_DATA_SOURCE=alpaca")
	}

	if c.Report.MinMarketCap < 0 {
		return fmt.Errorf("REPORT_MIN_MARKET_CAP must not be negative")
	}

	return nil
}

// RequireDatabase checks that a database URL is configured. Screening
// commands need one; offline utility commands do not.
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsDate(key string, defaultValue string) time.Time {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	date, err := time.Parse("2006-01-02", valueStr)
	if err != nil {
		// Fallback to default
		date, _ = time.Parse("2006-01-02", defaultValue)
	}

	return date
}
