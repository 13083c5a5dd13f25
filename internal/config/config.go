// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the knowledge base location, and the search engine knobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataFile string // Path to the knowledge base JSON file (read-only input)
	StateDir string // Directory for the exclusion list and feedback log

	// Search Configuration
	SearchThreshold float64 // Minimum blended score for a match (default 0.25)
	SearchTopK      int     // Candidates considered per query (default 10)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataFile: getEnv("DATA_FILE", filepath.Join("data", "knowledge.json")),
		StateDir: getEnv("STATE_DIR", "data"),

		SearchThreshold: getFloatEnv("SEARCH_THRESHOLD", 0.25),
		SearchTopK:      getIntEnv("SEARCH_TOP_K", 10),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataFile == "" {
		errs = append(errs, errors.New("DATA_FILE is required"))
	}
	if c.StateDir == "" {
		errs = append(errs, errors.New("STATE_DIR is required"))
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		errs = append(errs, fmt.Errorf("SEARCH_THRESHOLD must be in [0,1], got %v", c.SearchThreshold))
	}
	if c.SearchTopK <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_TOP_K must be positive, got %d", c.SearchTopK))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ExclusionPath returns the full path to the persisted exclusion list.
func (c *Config) ExclusionPath() string {
	return filepath.Join(c.StateDir, "disliked_answers.json")
}

// FeedbackPath returns the full path to the persisted feedback log.
func (c *Config) FeedbackPath() string {
	return filepath.Join(c.StateDir, "user_feedback_data.json")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
