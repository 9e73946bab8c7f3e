package config

import (
	"os"
	"strconv"
	"strings"
)

// Server captures HTTP server and validation service configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	// StrictDefault applies strict surface patterns when a request does not say.
	StrictDefault bool

	// BatchLimit caps the number of items in one batch request.
	BatchLimit int
	// BatchConcurrency caps the goroutines validating one batch.
	BatchConcurrency int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("IDCHECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:             addr,
		LogLevel:         strings.ToLower(envOr("IDCHECK_LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(envOr("IDCHECK_LOG_FORMAT", "json")),
		StrictDefault:    os.Getenv("IDCHECK_STRICT_DEFAULT") == "true",
		BatchLimit:       envInt("IDCHECK_BATCH_LIMIT", 100),
		BatchConcurrency: envInt("IDCHECK_BATCH_CONCURRENCY", 8),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envInt falls back on missing, malformed or non-positive values.
func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
