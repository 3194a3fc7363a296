package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Suggest SuggestConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// SuggestConfig tunes the title-suggestion path.
type SuggestConfig struct {
	MinSimilarity float64       // candidates below this score are dropped
	DefaultLimit  int           // limit when the caller does not pass one
	MaxLimit      int           // hard cap per request
	IndexMaxAge   time.Duration // staleness bound of the in-memory title index
	IndexRefresh  time.Duration // background refresh period
}

type CacheConfig struct {
	StatsTTL time.Duration // TTL for cached book_stats rows
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookrec API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Suggest: SuggestConfig{
			MinSimilarity: getEnvFloat("SUGGEST_MIN_SIMILARITY", 0.30),
			DefaultLimit:  getEnvInt("SUGGEST_DEFAULT_LIMIT", 5),
			MaxLimit:      getEnvInt("SUGGEST_MAX_LIMIT", 20),
			IndexMaxAge:   getEnvDuration("SUGGEST_INDEX_MAX_AGE", 30*time.Second),
			IndexRefresh:  getEnvDuration("SUGGEST_INDEX_REFRESH", 15*time.Second),
		},
		Cache: CacheConfig{
			StatsTTL: getEnvDuration("CACHE_STATS_TTL", 60*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid combinations.
func (c *Config) Validate() error {
	if c.Suggest.MinSimilarity < 0 || c.Suggest.MinSimilarity > 1 {
		return fmt.Errorf("SUGGEST_MIN_SIMILARITY must be in [0,1], got %v", c.Suggest.MinSimilarity)
	}
	if c.Suggest.DefaultLimit < 1 || c.Suggest.DefaultLimit > c.Suggest.MaxLimit {
		return fmt.Errorf("SUGGEST_DEFAULT_LIMIT must be in [1,%d]", c.Suggest.MaxLimit)
	}
	if c.Suggest.IndexMaxAge < c.Suggest.IndexRefresh {
		return fmt.Errorf("SUGGEST_INDEX_MAX_AGE must be >= SUGGEST_INDEX_REFRESH")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvFloat(key string, defaultValue float64) float64 {
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
