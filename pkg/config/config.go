// Package config loads application configuration from environment
// variables with development defaults and startup validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Mongo         MongoConfig
	Auth          AuthConfig
	Generation    GenerationConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes)
	HealthPort string

	// Origins allowed to call the API from a browser
	CORSOrigins []string
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// AuthConfig holds credential and token settings
type AuthConfig struct {
	// JWTSecret signs access tokens (HS256). Loaded once at startup;
	// rotating it invalidates all outstanding tokens.
	JWTSecret string
	TokenTTL  time.Duration
	// BcryptCost tunes the adaptive hashing cost
	BcryptCost int
}

// GenerationConfig holds settings for the outbound generation API
type GenerationConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Mongo:         loadMongoConfig(),
		Auth:          loadAuthConfig(),
		Generation:    loadGenerationConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("ARTIUM_HOST", "0.0.0.0"),
		Port:            getEnv("ARTIUM_PORT", "8000"),
		ReadTimeout:     getEnvDuration("ARTIUM_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("ARTIUM_WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:     getEnvDuration("ARTIUM_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("ARTIUM_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("ARTIUM_HEALTH_PORT", "9090"),
		CORSOrigins:     getEnvList("ARTIUM_CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}
}

func loadMongoConfig() MongoConfig {
	return MongoConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGODB_DB", "ai_article_creator"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:  getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:   getEnvDuration("JWT_EXPIRES", 60*time.Minute),
		BcryptCost: getEnvInt("ARTIUM_BCRYPT_COST", 12),
	}
}

func loadGenerationConfig() GenerationConfig {
	return GenerationConfig{
		BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		Timeout: getEnvDuration("GEMINI_TIMEOUT", 4*time.Minute),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("ARTIUM_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("ARTIUM_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("mongodb URI is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongodb database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if c.Generation.BaseURL == "" {
		return fmt.Errorf("generation base URL is required")
	}
	if c.Generation.Model == "" {
		return fmt.Errorf("generation model is required")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable or a default
func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
