package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasbreak/internal/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheRemoteTTL     time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize   int64
	MaxLimit        int
	AllowPrivateIPs bool

	// Detection defaults.
	DefaultRules []string
	GitHubToken  string
	GitHubAPIURL string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASBREAK_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASBREAK_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASBREAK_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASBREAK_CACHE_FILE_TTL", 15*time.Minute),
		CacheRemoteTTL:     envDuration("OASBREAK_CACHE_REMOTE_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASBREAK_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASBREAK_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("OASBREAK_MAX_INLINE_SIZE", 10*1024*1024)),
		MaxLimit:           envInt("OASBREAK_MAX_LIMIT", 1000),
		AllowPrivateIPs:    envBool("OASBREAK_ALLOW_PRIVATE_IPS", false),
		DefaultRules:       config.ParseMultiline(os.Getenv("OASBREAK_RULES")),
		GitHubToken:        envFirst("OASBREAK_GITHUB_TOKEN", "GITHUB_TOKEN"),
		GitHubAPIURL:       os.Getenv(config.EnvAPIURL),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// envFirst returns the first non-empty value among keys.
func envFirst(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
