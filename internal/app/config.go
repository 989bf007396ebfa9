package app

import "time"

// Config holds runtime configuration for the aggregation service.
type Config struct {
	// Engines lists the configured upstream engines in merge order.
	Engines []string

	// Per-engine settings
	SearxURL   string
	SearxKey   string
	BraveKey   string
	SearchFile string
	UserAgent  string

	// Behavior
	LanguageHint  string
	EngineTimeout time.Duration

	// Result cache
	CacheTTL  time.Duration
	CacheSize int

	// Redis-backed cache; empty RedisAddr selects the in-process cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Verbose bool
}
