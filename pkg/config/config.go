// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, model, parser, history, cache and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Model contains the hosted model endpoint configuration
	Model ModelConfig

	// Parser contains page fetching configuration
	Parser ParserConfig

	// History contains history log configuration
	History HistoryConfig

	// Cache contains page cache configuration
	Cache CacheConfig

	// Log contains logging configuration
	Log LogConfig

	// RateLimit contains per-IP rate limiting configuration
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Host is the interface to bind, empty for all
	Host string

	// Port is the HTTP server port
	Port string
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// ModelConfig holds the chat-completions endpoint settings
type ModelConfig struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	VisionModel string

	// MaxRetries is the number of SDK-level retries; 0 disables retrying
	MaxRetries int

	// Timeout bounds one request; 0 keeps the transport default
	Timeout time.Duration

	// Language is the language the model is asked to answer in
	Language string
}

// ParserConfig holds page fetching configuration
type ParserConfig struct {
	PageLoadTimeout time.Duration
	SettleDelay     time.Duration
	UserAgent       string

	// Engine is "rod" (headless Chrome) or "static" (plain HTTP, no screenshot)
	Engine string

	// BrowserBin overrides the Chrome binary; empty lets rod locate or download one
	BrowserBin string

	Workers   int
	QueueSize int

	// PageCacheTTL is how long successful pages are cached; 0 disables the cache
	PageCacheTTL time.Duration
}

// HistoryConfig holds history log configuration
type HistoryConfig struct {
	File     string
	MaxItems int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Requests allowed per Window for one client IP
	Requests int
	Window   time.Duration
}

// Defaults
const (
	DefaultModelBaseURL = "https://api.proxyapi.ru/openai/v1"
	DefaultModel        = "gpt-4o-mini"
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnvOrDefault("HOST", ""),
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Model: ModelConfig{
			APIKey:      getEnvOrDefault("MODEL_API_KEY", ""),
			BaseURL:     getEnvOrDefault("MODEL_BASE_URL", DefaultModelBaseURL),
			TextModel:   getEnvOrDefault("MODEL_TEXT", DefaultModel),
			VisionModel: getEnvOrDefault("MODEL_VISION", DefaultModel),
			MaxRetries:  getEnvAsIntOrDefault("MODEL_MAX_RETRIES", 0),
			Timeout:     getEnvAsDurationOrDefault("MODEL_TIMEOUT", 0),
			Language:    getEnvOrDefault("RESPONSE_LANGUAGE", "Russian"),
		},
		Parser: ParserConfig{
			PageLoadTimeout: getEnvAsDurationOrDefault("PARSER_TIMEOUT", 10*time.Second),
			SettleDelay:     getEnvAsDurationOrDefault("PARSER_SETTLE", 2*time.Second),
			UserAgent:       getEnvOrDefault("PARSER_USER_AGENT", DefaultUserAgent),
			Engine:          strings.ToLower(getEnvOrDefault("BROWSER_ENGINE", "rod")),
			BrowserBin:      getEnvOrDefault("BROWSER_BIN", ""),
			Workers:         getEnvAsIntOrDefault("BROWSER_WORKERS", 2),
			QueueSize:       getEnvAsIntOrDefault("BROWSER_QUEUE", 32),
			PageCacheTTL:    getEnvAsDurationOrDefault("PAGE_CACHE_TTL", 300*time.Second),
		},
		History: HistoryConfig{
			File:     getEnvOrDefault("HISTORY_FILE", "history.json"),
			MaxItems: getEnvAsIntOrDefault("MAX_HISTORY_ITEMS", 10),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "page_cache.db"),
			},
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 30),
			Window:   getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go duration strings ("1m30s") or plain
// seconds ("90", "1.5")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Model.APIKey == "" {
		return errors.New("MODEL_API_KEY must be set")
	}

	if c.Model.BaseURL == "" {
		return errors.New("model base URL cannot be empty")
	}

	if c.Model.MaxRetries < 0 {
		return errors.New("model max retries cannot be negative")
	}

	if c.Parser.PageLoadTimeout <= 0 {
		return errors.New("parser timeout must be positive")
	}

	if c.Parser.Engine != "rod" && c.Parser.Engine != "static" {
		return fmt.Errorf("browser engine must be 'rod' or 'static', got %q", c.Parser.Engine)
	}

	if c.Parser.Workers < 1 {
		return errors.New("browser workers must be at least 1")
	}

	if c.Parser.QueueSize < 1 {
		return errors.New("browser queue size must be at least 1")
	}

	if c.History.MaxItems < 1 {
		return errors.New("max history items must be at least 1")
	}

	if c.History.File == "" {
		return errors.New("history file cannot be empty")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit must allow at least one request per positive window")
	}

	return nil
}
