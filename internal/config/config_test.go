package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("PROVIDER_API_KEY", "test-api-key")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

provider:
  base_url: "https://bible.example.com/v1"
  api_key: "yaml-key"
  timeout: "3s"
  requests_per_second: 2.5
  burst: 3
  retry_delay: "100ms"

cache:
  verse_timeout: "4s"
  populate_timeout: "1m"
  max_verses: 180

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Provider
	if cfg.Provider.BaseURL != "https://bible.example.com/v1" {
		t.Errorf("provider.base_url = %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.APIKey != "yaml-key" {
		t.Errorf("provider.api_key = %q, want %q", cfg.Provider.APIKey, "yaml-key")
	}
	if cfg.Provider.RequestsPerSecond != 2.5 {
		t.Errorf("provider.requests_per_second = %v, want 2.5", cfg.Provider.RequestsPerSecond)
	}
	if cfg.Provider.Burst != 3 {
		t.Errorf("provider.burst = %d, want 3", cfg.Provider.Burst)
	}
	if cfg.Provider.RetryDelay != 100*time.Millisecond {
		t.Errorf("provider.retry_delay = %v, want 100ms", cfg.Provider.RetryDelay)
	}

	// Cache
	if cfg.Cache.VerseTimeout != 4*time.Second {
		t.Errorf("cache.verse_timeout = %v, want 4s", cfg.Cache.VerseTimeout)
	}
	if cfg.Cache.PopulateTimeout != time.Minute {
		t.Errorf("cache.populate_timeout = %v, want 1m", cfg.Cache.PopulateTimeout)
	}
	if cfg.Cache.MaxVerses != 180 {
		t.Errorf("cache.max_verses = %d, want 180", cfg.Cache.MaxVerses)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PROVIDER_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("provider.api_key = %q, want %q (ENV override)", cfg.Provider.APIKey, "env-key")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	// Working dir without config.yaml so the fallback path is absent.
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Provider.BaseURL != "https://api.scripture.api.bible/v1" {
		t.Errorf("provider.base_url = %q, want default", cfg.Provider.BaseURL)
	}
	if cfg.Cache.MaxVerses != 200 {
		t.Errorf("cache.max_verses = %d, want 200 (default)", cfg.Cache.MaxVerses)
	}
	if cfg.Cache.VerseTimeout != 15*time.Second {
		t.Errorf("cache.verse_timeout = %v, want 15s (default)", cfg.Cache.VerseTimeout)
	}
	if cfg.CORS.AllowedMethods != "GET,OPTIONS" {
		t.Errorf("cors.allowed_methods = %q, want GET,OPTIONS (default)", cfg.CORS.AllowedMethods)
	}
	if cfg.RateLimit.RequestsPerMinute != 120 {
		t.Errorf("rate_limit.requests_per_minute = %d, want 120 (default)", cfg.RateLimit.RequestsPerMinute)
	}
}

func TestLoad_NoFile_MissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("PROVIDER_API_KEY", "")
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error when provider api key is missing")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/testdb",
			MaxConns: 25,
			MinConns: 5,
		},
		Provider: ProviderConfig{
			BaseURL:           "https://api.scripture.api.bible/v1",
			APIKey:            "key",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
			RetryDelay:        500 * time.Millisecond,
		},
		Cache: CacheConfig{
			VerseTimeout:    15 * time.Second,
			PopulateTimeout: 5 * time.Minute,
			MaxVerses:       200,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 120,
			Burst:             20,
			CleanupInterval:   5 * time.Minute,
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"min conns above max", func(c *Config) { c.Database.MinConns = 30 }, "min_conns"},
		{"blank api key", func(c *Config) { c.Provider.APIKey = "  " }, "api_key"},
		{"relative base url", func(c *Config) { c.Provider.BaseURL = "/v1" }, "base_url"},
		{"zero provider timeout", func(c *Config) { c.Provider.Timeout = 0 }, "provider: timeout"},
		{"negative rps", func(c *Config) { c.Provider.RequestsPerSecond = -1 }, "requests_per_second"},
		{"zero burst", func(c *Config) { c.Provider.Burst = 0 }, "burst"},
		{"negative retry delay", func(c *Config) { c.Provider.RetryDelay = -time.Second }, "retry_delay"},
		{"zero verse timeout", func(c *Config) { c.Cache.VerseTimeout = 0 }, "verse_timeout"},
		{"populate shorter than verse", func(c *Config) { c.Cache.PopulateTimeout = time.Second }, "populate_timeout"},
		{"zero max verses", func(c *Config) { c.Cache.MaxVerses = 0 }, "max_verses"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"negative rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = -1 }, "rate_limit.requests_per_minute"},
		{"zero rate limit burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rate_limit.burst"},
		{"zero rate limit cleanup", func(c *Config) { c.RateLimit.CleanupInterval = 0 }, "rate_limit.cleanup_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_ZeroRPSAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.RequestsPerSecond = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for disabled rate limit: %v", err)
	}
}

func TestValidate_DisabledRateLimitIgnoresBurst(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for disabled request limiter: %v", err)
	}
}
