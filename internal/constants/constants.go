// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBPath      = "songdex.db"
	DefaultBackend     = "sqlite"
	DefaultAIModel     = "gemini-3.0-pro-preview"
	DefaultAIBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultEnrichDelay = 1 * time.Second
	DefaultCacheTTL    = 12 * time.Hour
)

// Duration gate for enrichment (seconds). Shorts and live archives fall
// outside this window and are marked UNKNOWN without an AI call.
const (
	DurationMin = 60
	DurationMax = 60 * 20
)

// External call limits
const (
	VideoDetailsBatchSize = 50
	MaxCommentsPerVideo   = 100
	MaxCommentKeywords    = 20
	ChorusMinConfidence   = 0.5
)

// Read API limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)
