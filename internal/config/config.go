package config

import (
	"os"
	"strconv"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	AdminUser     string
	AdminPassword string

	DatabaseURL string

	ListenAddr string

	// LLMEndpoint is the chat-completions URL used for AI-assisted
	// persona generation. If empty, the generate endpoint is disabled.
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	// SampleUsage controls whether usage queries may fill missing days
	// with deterministic sample data. Intended for demo installs only.
	SampleUsage bool
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		AdminUser:     getenv("APP_ADMIN_USER", "admin"),
		AdminPassword: getenv("APP_ADMIN_PASSWORD", "changeme"),
		DatabaseURL:   os.Getenv("APP_DATABASE_URL"),
		ListenAddr:    getenv("APP_LISTEN_ADDR", ":8080"),
		LLMEndpoint:   os.Getenv("APP_LLM_ENDPOINT"),
		LLMAPIKey:     os.Getenv("APP_LLM_API_KEY"),
		LLMModel:      getenv("APP_LLM_MODEL", "gpt-4o-mini"),
		SampleUsage:   true,
	}

	if v := os.Getenv("APP_SAMPLE_USAGE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SampleUsage = b
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
