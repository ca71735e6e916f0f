package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/remora-ai/remora/internal/llm"
)

// Config holds all application configuration, resolved from environment
// variables with sensible defaults.
//
// Environment Variables:
// LLM Configuration:
// - LLM_API_KEY: API key for the LLM provider (required)
// - LLM_API_URL: API endpoint URL (default: https://openrouter.ai/api/v1)
// - LLM_MODEL: Model name to use (default: openai/gpt-4o-mini)
// - LLM_MAX_TOKENS: Maximum tokens for responses (default: 2000)
// - LLM_TEMPERATURE: Temperature for responses (default: 0.7)
// - LLM_TIMEOUT: Request timeout in seconds (default: 60)
// - LLM_SITE_URL: Site URL for HTTP referer header (optional)
// - LLM_APP_NAME: Application name for X-Title header (optional)
//
// Search Configuration:
// - SEARCH_API_KEY: Tavily API key (required only by search-capable agents)
// - SEARCH_API_URL: Tavily API URL (default: https://api.tavily.com/search)
//
// Storage Configuration:
// - STORAGE_DRIVER: "memory", "sqlite" or "redis" (default: sqlite)
// - SQLITE_PATH: path to the sqlite database file (default: ./remora.db)
// - REDIS_ADDR: redis host:port (default: localhost:6379)
// - REDIS_PASSWORD: redis password (optional)
// - REDIS_DB: redis database number (default: 0)
// - SESSION_TTL: session expiry for the redis driver, e.g. "720h" (default: 0, no expiry)
//
// Server Configuration:
// - SERVER_ADDR: HTTP listen address (default: :8080)
// - SWEEP_CRON: cron expression for the idle-session sweep (default: "0 * * * *")
// - SWEEP_MAX_AGE: sessions idle longer than this are swept, e.g. "2160h" (default: 0, disabled)
//
// Application Configuration:
// - APP_NAME: logical application name sessions are scoped by (default: remora)
// - USER_ID: default user identity for the CLI (default: local)
// - AGENT_MAX_ITERATIONS: max tool calling iterations (default: 10)
// - LOG_LEVEL: debug, info, warn, error (default: info)
type Config struct {
	LLM     llm.Config    `json:"llm"`
	Search  SearchConfig  `json:"search"`
	Storage StorageConfig `json:"storage"`
	Server  ServerConfig  `json:"server"`
	App     AppConfig     `json:"app"`
}

// SearchConfig holds the configuration for the web search tool.
type SearchConfig struct {
	APIKey string `json:"api_key"`
	APIURL string `json:"api_url"`
}

// StorageConfig selects and configures the session backend.
type StorageConfig struct {
	Driver        string        `json:"driver"`
	SQLitePath    string        `json:"sqlite_path"`
	RedisAddr     string        `json:"redis_addr"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	SessionTTL    time.Duration `json:"session_ttl"`
}

// ServerConfig configures the HTTP serve mode.
type ServerConfig struct {
	Addr        string        `json:"addr"`
	SweepCron   string        `json:"sweep_cron"`
	SweepMaxAge time.Duration `json:"sweep_max_age"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name          string `json:"name"`
	UserID        string `json:"user_id"`
	MaxIterations int    `json:"max_iterations"`
	LogLevel      string `json:"log_level"`
}

// Option is a function type for adjusting a Config after env resolution.
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options. Fails when a required credential is missing,
// so startup aborts before any session work begins.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		LLM: llm.Config{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://openrouter.ai/api/v1"),
			Model:       getEnvString("LLM_MODEL", "openai/gpt-4o-mini"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			Timeout:     getEnvInt("LLM_TIMEOUT", 60),
			SiteURL:     getEnvString("LLM_SITE_URL", ""),
			AppName:     getEnvString("LLM_APP_NAME", ""),
		},
		Search: SearchConfig{
			APIKey: getEnvString("SEARCH_API_KEY", ""),
			APIURL: getEnvString("SEARCH_API_URL", "https://api.tavily.com/search"),
		},
		Storage: StorageConfig{
			Driver:        getEnvString("STORAGE_DRIVER", "sqlite"),
			SQLitePath:    getEnvString("SQLITE_PATH", "./remora.db"),
			RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnvString("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			SessionTTL:    getEnvDuration("SESSION_TTL", 0),
		},
		Server: ServerConfig{
			Addr:        getEnvString("SERVER_ADDR", ":8080"),
			SweepCron:   getEnvString("SWEEP_CRON", "0 * * * *"),
			SweepMaxAge: getEnvDuration("SWEEP_MAX_AGE", 0),
		},
		App: AppConfig{
			Name:          getEnvString("APP_NAME", "remora"),
			UserID:        getEnvString("USER_ID", "local"),
			MaxIterations: getEnvInt("AGENT_MAX_ITERATIONS", 10),
			LogLevel:      getEnvString("LOG_LEVEL", "info"),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set.
func (c *Config) validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	switch c.Storage.Driver {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want memory, sqlite or redis)", c.Storage.Driver)
	}
	return nil
}

// getEnvString gets a string value from environment variables with default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment variables with default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
