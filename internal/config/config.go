package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDatabase string

	GeminiAPIKey string

	HTTPPort    string
	LogLevel    string
	Environment string

	SummaryWindowDays int
	ChunkWordBudget   int

	// AuthSecret enables JWT bearer auth when non-empty.
	AuthSecret string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "ai_diary"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "production"),

		SummaryWindowDays: getEnvAsInt("SUMMARY_WINDOW_DAYS", 7),
		ChunkWordBudget:   getEnvAsInt("CHUNK_WORD_BUDGET", 500),

		AuthSecret: getEnv("AUTH_SECRET", ""),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.SummaryWindowDays <= 0 {
		return fmt.Errorf("SUMMARY_WINDOW_DAYS must be positive, got %d", cfg.SummaryWindowDays)
	}
	if cfg.ChunkWordBudget <= 0 {
		return fmt.Errorf("CHUNK_WORD_BUDGET must be positive, got %d", cfg.ChunkWordBudget)
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
