package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "NATIVE_CURRENCY", "REPORT_CACHE_TTL", "BACKUP_SCHEDULE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != "localhost:5001" {
		t.Errorf("Expected addr localhost:5001, got %s", cfg.Server.Addr)
	}
	if cfg.Currency.NativeCode != "ARS" {
		t.Errorf("Expected native currency ARS, got %s", cfg.Currency.NativeCode)
	}
	if cfg.Reports.CacheTTL != 5*time.Minute {
		t.Errorf("Expected cache TTL 5m, got %s", cfg.Reports.CacheTTL)
	}
	if cfg.Backup.Schedule != "" {
		t.Errorf("Expected backups disabled, got schedule %q", cfg.Backup.Schedule)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("NATIVE_CURRENCY", "brl")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("BACKUP_SCHEDULE", "@daily")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Expected addr 0.0.0.0:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Currency.NativeCode != "BRL" {
		t.Errorf("Expected native currency BRL, got %s", cfg.Currency.NativeCode)
	}
	if cfg.Reports.CacheTTL != 30*time.Second {
		t.Errorf("Expected cache TTL 30s, got %s", cfg.Reports.CacheTTL)
	}
	if got := cfg.CORS.AllowedOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("Unexpected origins %v", got)
	}
	if cfg.Backup.Schedule != "@daily" {
		t.Errorf("Expected schedule @daily, got %q", cfg.Backup.Schedule)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"REPORT_CACHE_TTL": "soon",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "1.5",
		"LOG_PRETTY":       "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected an error for %s=%s", key, value)
			}
		})
	}
}
