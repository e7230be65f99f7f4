// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server runtime configuration.
type Config struct {
	Port        string // HTTP listen port
	DatabaseURL string // PostgreSQL connection URL
	AIProvider  string // default AI provider id, empty means the built-in default

	// Rate limiting (requests per window per client IP).
	RateLimitRequests int
	RateLimitWindow   int // seconds

	LogJSON  bool
	LogDebug bool
}

// Load reads the server configuration from environment variables. PORT
// defaults to 8080; DATABASE_URL is required.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AIProvider:        os.Getenv("AI_PROVIDER"),
		RateLimitRequests: 100,
		RateLimitWindow:   60,
		LogJSON:           getEnv("LOG_FORMAT", "json") == "json",
		LogDebug:          getEnv("LOG_LEVEL", "info") == "debug",
	}

	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %v", err)
		}
		cfg.RateLimitRequests = n
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SECONDS: %v", err)
		}
		cfg.RateLimitWindow = n
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow < 1 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be at least 1, got: %d", c.RateLimitWindow)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
