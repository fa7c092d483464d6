package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the movieverse service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	Browse    BrowseConfig
	Dashboard DashboardConfig
	RateLimit RateLimitConfig
	Port      string
	LogLevel  slog.Level
}

// DBConfig holds PostgreSQL configuration for the dashboard catalog.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// BrowseConfig holds movie browser behaviour switches.
type BrowseConfig struct {
	// ResetPageOnFilterChange sends the session back to page 1 whenever the
	// search text, genre or sort key changes. Off by default: the page is
	// kept across filter edits.
	ResetPageOnFilterChange bool
	SessionTTL              time.Duration
}

// Dashboard sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// DashboardConfig holds dashboard dataset configuration.
type DashboardConfig struct {
	CSVPath string
	Source  string
	Watch   bool
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	timeoutSec, _ := strconv.Atoi(getEnv("TMDB_TIMEOUT_SECONDS", "15"))
	sessionHours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	rateLimitMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "120"))
	rateLimitWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "movieverse"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: TMDBConfig{
			APIKey:   getEnv("TMDB_API_KEY", ""),
			BaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			Language: getEnv("TMDB_LANGUAGE", "en-US"),
			Timeout:  time.Duration(timeoutSec) * time.Second,
		},
		Browse: BrowseConfig{
			ResetPageOnFilterChange: getBool("BROWSE_RESET_PAGE_ON_FILTER_CHANGE", false),
			SessionTTL:              time.Duration(sessionHours) * time.Hour,
		},
		Dashboard: DashboardConfig{
			CSVPath: getEnv("DASHBOARD_CSV", "data/imdb_clean.csv"),
			Source:  strings.ToLower(getEnv("DASHBOARD_SOURCE", SourceCSV)),
			Watch:   getBool("DASHBOARD_WATCH", true),
		},
		RateLimit: RateLimitConfig{
			Max:           rateLimitMax,
			WindowSeconds: rateLimitWindow,
		},
		Port:     getEnv("SERVER_PORT", "8080"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is not set")
	}
	if cfg.Dashboard.Source != SourceCSV && cfg.Dashboard.Source != SourcePostgres {
		return nil, fmt.Errorf("unknown DASHBOARD_SOURCE %q (want %q or %q)",
			cfg.Dashboard.Source, SourceCSV, SourcePostgres)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
