package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret       = "a-very-secret-key-should-be-longer-and-random"
	defaultFxProviderURL   = "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange"
	defaultWarningFraction = "0.85"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	MigrationsPath     string
	JWTSecret          string
	JWTIssuer          string
	CORSAllowedOrigins []string
	RateLimit          string // ulule limiter format, e.g. "100-M"
	PosthogAPIKey      string
	ShutdownTimeout    time.Duration

	// User defaults
	DefaultBaseCurrency string
	DefaultTimezone     string

	// FX resolution
	FxProviderURL    string
	FxHTTPTimeout    time.Duration
	FxTodayTTL       time.Duration
	FxHistoricalTTL  time.Duration
	FxFallbackDays   int
	FxCacheSize      int
	CacheCleanup     time.Duration
	WarningThreshold decimal.Decimal

	// Pagination
	PageSizeDefault int
	PageSizeMax     int
}

// Location resolves DefaultTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c == nil || c.DefaultTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "expense-tracker")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DEFAULT_BASE_CURRENCY", "UAH")
	viper.SetDefault("DEFAULT_TIMEZONE", "Europe/Kyiv")
	viper.SetDefault("FX_PROVIDER_URL", defaultFxProviderURL)
	viper.SetDefault("FX_HTTP_TIMEOUT", "10s")
	viper.SetDefault("FX_TODAY_TTL", "30m")
	viper.SetDefault("FX_HISTORICAL_TTL", "2160h")
	viper.SetDefault("FX_FALLBACK_DAYS", 7)
	viper.SetDefault("FX_CACHE_SIZE", 4096)
	viper.SetDefault("CACHE_CLEANUP_INTERVAL", "5m")
	viper.SetDefault("BUDGET_WARNING_THRESHOLD", defaultWarningFraction)
	viper.SetDefault("PAGE_SIZE_DEFAULT", 30)
	viper.SetDefault("PAGE_SIZE_MAX", 100)

	// Values from .env are now in the process env and can be overridden by real environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.ShutdownTimeout = durationOr("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.DefaultBaseCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("DEFAULT_BASE_CURRENCY")))
	cfg.DefaultTimezone = viper.GetString("DEFAULT_TIMEZONE")
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		log.Printf("Warning: Invalid value for DEFAULT_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.DefaultTimezone)
		cfg.DefaultTimezone = "UTC"
	}

	cfg.FxProviderURL = viper.GetString("FX_PROVIDER_URL")
	cfg.FxHTTPTimeout = durationOr("FX_HTTP_TIMEOUT", 10*time.Second)
	cfg.FxTodayTTL = durationOr("FX_TODAY_TTL", 30*time.Minute)
	cfg.FxHistoricalTTL = durationOr("FX_HISTORICAL_TTL", 90*24*time.Hour)
	cfg.FxFallbackDays = positiveIntOr("FX_FALLBACK_DAYS", 7, true)
	cfg.FxCacheSize = positiveIntOr("FX_CACHE_SIZE", 4096, false)
	cfg.CacheCleanup = durationOr("CACHE_CLEANUP_INTERVAL", 5*time.Minute)
	cfg.PageSizeDefault = positiveIntOr("PAGE_SIZE_DEFAULT", 30, false)
	cfg.PageSizeMax = positiveIntOr("PAGE_SIZE_MAX", 100, false)
	if cfg.PageSizeDefault > cfg.PageSizeMax {
		cfg.PageSizeDefault = cfg.PageSizeMax
	}

	thresholdStr := viper.GetString("BUDGET_WARNING_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil || !threshold.IsPositive() || threshold.GreaterThan(decimal.NewFromInt(1)) {
		log.Printf("Warning: Invalid value for BUDGET_WARNING_THRESHOLD ('%s'). Defaulting to %s.\n", thresholdStr, defaultWarningFraction)
		threshold = decimal.RequireFromString(defaultWarningFraction)
	}
	cfg.WarningThreshold = threshold

	return cfg, nil
}

func durationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func positiveIntOr(key string, def int, allowZero bool) int {
	v := viper.GetInt(key)
	if v < 0 || (v == 0 && !allowZero) {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, viper.GetString(key), def)
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
