package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Storage
	StorageBackend    string
	DatabaseURL       string
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	// Auth
	JWTSecret string

	// Server
	Port           string
	Environment    string
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// No .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_API_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),

		StorageBackend:    getEnv("STORAGE_BACKEND", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		DBConnectDelay:    getEnvDuration("DB_CONNECT_DELAY", 2*time.Second),

		JWTSecret: getEnv("JWT_SECRET", ""),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	// Default to the durable backend when a database is configured.
	if cfg.StorageBackend == "" {
		if cfg.DatabaseURL != "" {
			cfg.StorageBackend = BackendPostgres
		} else {
			cfg.StorageBackend = BackendMemory
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND is postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.DBConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
