package config

import (
	"strings"
	"testing"
	"time"

	"songdex/internal/constants"
)

func validConfig() *Config {
	return &Config{
		Port:        "8080",
		DBPath:      "test.db",
		Backend:     constants.BackendSQLite,
		EnrichDelay: time.Second,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty port", func(c *Config) { c.Port = "" }, "PORT"},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "PORT"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "PORT"},
		{"unknown backend", func(c *Config) { c.Backend = "dynamo" }, "STORAGE_BACKEND"},
		{"missing db path", func(c *Config) { c.DBPath = "" }, "DB_PATH"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"negative delay", func(c *Config) { c.EnrichDelay = -time.Second }, "ENRICH_DELAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	cfg.LogLevel = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "PORT") || !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should list every problem: %v", err)
	}
}

func TestValidateMemoryBackendNeedsNoDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.Backend = constants.BackendMemory
	cfg.DBPath = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend should not require DB_PATH: %v", err)
	}
}

func TestValidateCollector(t *testing.T) {
	cfg := validConfig()
	err := cfg.ValidateCollector()
	if err == nil {
		t.Fatal("expected error without API keys")
	}
	if !strings.Contains(err.Error(), "YOUTUBE_API_KEY") || !strings.Contains(err.Error(), "AI_API_KEY") {
		t.Errorf("error = %v", err)
	}

	cfg.YouTubeAPIKey = "yt-key"
	cfg.AIAPIKey = "ai-key"
	if err := cfg.ValidateCollector(); err != nil {
		t.Errorf("valid collector config rejected: %v", err)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"UCa", 1},
		{"UCa,UCb", 2},
		{" UCa , ,UCb ", 2},
	}

	for _, tt := range tests {
		if got := splitList(tt.raw); len(got) != tt.want {
			t.Errorf("splitList(%q) = %v, want %d entries", tt.raw, got, tt.want)
		}
	}
}
