package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Provider.validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.RequestsPerMinute > 0 {
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be >= 1 (got %d)", c.RateLimit.Burst)
		}
		if c.RateLimit.CleanupInterval <= 0 {
			return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
		}
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", validLogLevels, c.Log.Level)
	}

	return nil
}

func (p *ProviderConfig) validate() error {
	if strings.TrimSpace(p.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", p.BaseURL)
	}

	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", p.Timeout)
	}
	if p.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0 (got %v)", p.RequestsPerSecond)
	}
	if p.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", p.Burst)
	}
	if p.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be >= 0 (got %v)", p.RetryDelay)
	}

	return nil
}

func (c *CacheConfig) validate() error {
	if c.VerseTimeout <= 0 {
		return fmt.Errorf("verse_timeout must be > 0 (got %v)", c.VerseTimeout)
	}
	if c.PopulateTimeout < c.VerseTimeout {
		return fmt.Errorf("populate_timeout (%v) must be >= verse_timeout (%v)", c.PopulateTimeout, c.VerseTimeout)
	}
	if c.MaxVerses < 1 {
		return fmt.Errorf("max_verses must be >= 1 (got %d)", c.MaxVerses)
	}

	return nil
}
