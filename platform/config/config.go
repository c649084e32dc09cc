// Package config provides application configuration loaded from the
// environment. This is part of the platform layer and contains no
// business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig exposes database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig exposes HTTP server settings.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// JWTConfig exposes JWT verification settings.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// RedisConfig exposes the mutation-stream connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetMutationChannel() string
}

// IntelligenceConfig exposes cache and enrichment tuning knobs.
type IntelligenceConfig interface {
	GetQueryCacheTTL() time.Duration
	GetQueryCacheSize() int
	GetEnrichmentCacheTTL() time.Duration
	GetEnrichmentCacheSize() int
	GetStoreTimeout() time.Duration
}

// Config holds all application configuration.
type Config struct {
	Env                 string
	HTTPAddr            string
	DatabaseURL         string
	JWTAccessSecret     string
	RedisURL            string
	MutationChannel     string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	QueryCacheTTL       time.Duration
	QueryCacheSize      int
	EnrichmentCacheTTL  time.Duration
	EnrichmentCacheSize int
	StoreTimeout        time.Duration
}

// Load reads configuration from the environment (and .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTAccessSecret:     getEnv("JWT_ACCESS_SECRET", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		MutationChannel:     getEnv("MUTATION_CHANNEL", "leads.mutations"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		QueryCacheTTL:       mustDuration(getEnv("QUERY_CACHE_TTL", "60s")),
		QueryCacheSize:      mustInt(getEnv("QUERY_CACHE_SIZE", "50")),
		EnrichmentCacheTTL:  mustDuration(getEnv("ENRICHMENT_CACHE_TTL", "300s")),
		EnrichmentCacheSize: mustInt(getEnv("ENRICHMENT_CACHE_SIZE", "500")),
		StoreTimeout:        mustDuration(getEnv("STORE_TIMEOUT", "5s")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.QueryCacheTTL <= 0 || cfg.EnrichmentCacheTTL <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive durations")
	}

	return cfg, nil
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// RedisConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetMutationChannel() string { return c.MutationChannel }

// IntelligenceConfig implementation
func (c *Config) GetQueryCacheTTL() time.Duration      { return c.QueryCacheTTL }
func (c *Config) GetQueryCacheSize() int               { return c.QueryCacheSize }
func (c *Config) GetEnrichmentCacheTTL() time.Duration { return c.EnrichmentCacheTTL }
func (c *Config) GetEnrichmentCacheSize() int          { return c.EnrichmentCacheSize }
func (c *Config) GetStoreTimeout() time.Duration       { return c.StoreTimeout }

// IsStreamEnabled reports whether the redis mutation stream is configured.
func (c *Config) IsStreamEnabled() bool { return c.RedisURL != "" }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
