// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server and pipeline settings.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// MaxUploadMB bounds the size of an uploaded statement.
	MaxUploadMB int
	// CategoryRules is an optional path to a YAML file overriding the
	// built-in categorization keyword tables and thresholds.
	CategoryRules string
	// CacheSize is the number of analyzed statements kept in the
	// boundary result cache, keyed by content hash.
	CacheSize int
}

// Load reads configuration from a .env file (if present) and the
// process environment. Missing values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          envOr("PORT", "8080"),
		MaxUploadMB:   envIntOr("MAX_UPLOAD_MB", 32),
		CategoryRules: os.Getenv("CATEGORY_RULES"),
		CacheSize:     envIntOr("CACHE_SIZE", 32),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
