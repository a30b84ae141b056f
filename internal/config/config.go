package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"songdex/internal/constants"
)

// Config holds all application configuration. It is constructed once in
// main and passed into component constructors; nothing reads the
// environment after Load returns.
type Config struct {
	Port             string
	DBPath           string
	Backend          string
	YouTubeAPIKey    string
	AIAPIKey         string
	AIBaseURL        string
	AIModel          string
	TargetChannelIDs []string
	EnrichDelay      time.Duration
	LogLevel         string
	LogFormat        string
}

// Load loads configuration from a .env file (if present) and environment
// variables with defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", constants.DefaultPort),
		DBPath:           getEnv("DB_PATH", constants.DefaultDBPath),
		Backend:          getEnv("STORAGE_BACKEND", constants.DefaultBackend),
		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIBaseURL:        getEnv("AI_BASE_URL", constants.DefaultAIBaseURL),
		AIModel:          getEnv("AI_MODEL", constants.DefaultAIModel),
		TargetChannelIDs: splitList(getEnv("TARGET_CHANNEL_IDS", "")),
		EnrichDelay:      getDurationEnv("ENRICH_DELAY", constants.DefaultEnrichDelay),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration shared by all binaries.
func (c *Config) Validate() error {
	var errs []string

	if c.Port == "" {
		errs = append(errs, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errs = append(errs, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	switch c.Backend {
	case constants.BackendSQLite:
		if c.DBPath == "" {
			errs = append(errs, "DB_PATH cannot be empty")
		}
	case constants.BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("STORAGE_BACKEND must be one of: sqlite, memory, got: %s", c.Backend))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if c.EnrichDelay < 0 {
		errs = append(errs, "ENRICH_DELAY cannot be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidateCollector validates the extra settings the collector binary needs.
func (c *Config) ValidateCollector() error {
	var errs []string

	if c.YouTubeAPIKey == "" {
		errs = append(errs, "YOUTUBE_API_KEY cannot be empty")
	}
	if c.AIAPIKey == "" {
		errs = append(errs, "AI_API_KEY cannot be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return c.Validate()
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
