// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"resume-screener"`
	Port        int    `env:"PORT" envDefault:"8080"`
	// RedisURL enables the Redis-backed upload store when set; empty keeps
	// uploads in process memory.
	RedisURL string `env:"REDIS_URL"`
	// UploadTTL bounds how long extracted resume text stays retrievable.
	UploadTTL   time.Duration `env:"UPLOAD_TTL" envDefault:"2h"`
	MaxUploadMB int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	// CatalogFile optionally overrides the built-in domain skill catalog.
	CatalogFile string `env:"CATALOG_FILE"`
	// ReportDir is where batch report artifacts are written.
	ReportDir string `env:"REPORT_DIR" envDefault:"reports"`
	// BatchConcurrency caps parallel per-resume scoring in batch analysis.
	BatchConcurrency int `env:"BATCH_CONCURRENCY" envDefault:"4"`

	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITimeout     time.Duration `env:"OPENAI_TIMEOUT" envDefault:"30s"`
	OpenAIMaxElapsed  time.Duration `env:"OPENAI_BACKOFF_MAX_ELAPSED" envDefault:"60s"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// AIEnabled reports whether the optional AI suggestion path is configured.
func (c Config) AIEnabled() bool { return c.OpenAIAPIKey != "" }

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
