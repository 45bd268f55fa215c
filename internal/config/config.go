package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the tasting engine configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8084"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Secret field, loaded from secrets, no envconfig tag
	DBPassword string

	// Redis backs the per-user daily generation quota. When RedisAddr is
	// empty the service falls back to an in-process counter, which is only
	// correct for a single instance.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Secret field, loaded from secrets, no envconfig tag
	RedisPassword string

	// RabbitMQ telemetry (optional; noop publisher when empty)
	RabbitMQURL    string `envconfig:"RABBITMQ_URL" default:""`
	TelemetryQueue string `envconfig:"TELEMETRY_QUEUE" default:"tasting_events"`

	// AI collaborator (OpenAI-compatible endpoint or local Ollama).
	// An empty API key for the openai provider means generation is
	// unavailable, which the engine surfaces as a disabled feature.
	AIProvider string        `envconfig:"AI_PROVIDER" default:"openai"`
	AIBaseURL  string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel    string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat"`
	AITimeout  time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	// Secret field, loaded from secrets, no envconfig tag
	AIAPIKey string

	// Tasting engine tuning
	DailyGenerationLimit int           `envconfig:"DAILY_GENERATION_LIMIT" default:"3"`
	ScriptTTL            time.Duration `envconfig:"SCRIPT_TTL" default:"168h"` // 7 days
	CacheSweepInterval   time.Duration `envconfig:"CACHE_SWEEP_INTERVAL" default:"6h"`

	// JWT (verification only; tokens are issued by the auth collaborator)
	// Secret field, loaded from secrets, no envconfig tag
	JWTSecret string

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// AIConfigured reports whether the AI collaborator can be called at all.
// Ollama needs no credentials, only a base URL.
func (c *Config) AIConfigured() bool {
	if c.AIProvider == "ollama" {
		return c.AIBaseURL != ""
	}
	return c.AIAPIKey != ""
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Required secrets
	var loadErr error
	cfg.DBPassword, loadErr = readSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.JWTSecret, loadErr = readSecret("jwt_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	// Optional secrets
	if key, err := readSecret("ai_api_key"); err == nil {
		cfg.AIAPIKey = key
	} else {
		log.Printf("Optional secret 'ai_api_key' not found: %v. AI generation will be reported as unconfigured.", err)
	}

	if pass, err := readSecret("redis_password"); err == nil {
		cfg.RedisPassword = pass
	}

	return &cfg, nil
}
