package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Log       LogConfig
	Currency  CurrencyConfig
	Reports   ReportsConfig
	RateLimit RateLimitConfig
	Backup    BackupConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig selects the log level and output format
type LogConfig struct {
	Level  string
	Pretty bool
}

// CurrencyConfig describes the native currency operations are recorded in.
// Locales are handed to the dashboard for number formatting.
type CurrencyConfig struct {
	NativeCode   string
	NativeLocale string
	USDLocale    string
}

// ReportsConfig holds report cache settings
type ReportsConfig struct {
	CacheTTL time.Duration
}

// RateLimitConfig limits the data import/export endpoints
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// BackupConfig holds scheduled backup settings. An empty Schedule disables
// scheduled backups; a non-empty Key encrypts archives.
type BackupConfig struct {
	Dir      string
	Schedule string
	Key      string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cacheTTL, err := time.ParseDuration(getEnv("REPORT_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_CACHE_TTL: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	pretty, err := strconv.ParseBool(getEnv("LOG_PRETTY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_pro.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: pretty,
		},
		Currency: CurrencyConfig{
			NativeCode:   strings.ToUpper(getEnv("NATIVE_CURRENCY", "ARS")),
			NativeLocale: getEnv("NATIVE_LOCALE", "es-AR"),
			USDLocale:    "en-US",
		},
		Reports: ReportsConfig{
			CacheTTL: cacheTTL,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
		Backup: BackupConfig{
			Dir:      getEnv("BACKUP_DIR", "./data/backups"),
			Schedule: os.Getenv("BACKUP_SCHEDULE"),
			Key:      os.Getenv("BACKUP_KEY"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated list, dropping empty entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
