package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// app config, loaded once at process start
type Config struct {
	Port               string
	APIBaseURL         string
	DBDriver           string
	DatabaseURL        string
	SQLitePath         string
	Provider           string
	CORSAllowedOrigins []string
	JWTSecret          string
	JWTIssuer          string
	RedisAddr          string
	QuestionCount      int
	AITimeout          time.Duration
	AIMaxAttempts      int
	StaleStartTTL      time.Duration
	StaleStartSchedule string
	SeedTemplates      bool
}

var supportedProviders = map[string]bool{"gemini": true, "openai": true}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		APIBaseURL:         getEnvOrDefault("API_BASE_URL", "http://localhost:8080"),
		DBDriver:           strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         getEnvOrDefault("SQLITE_PATH", "interviewprep.db"),
		Provider:           strings.ToLower(getEnvOrDefault("AI_PROVIDER", "gemini")),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		JWTSecret:          os.Getenv("AUTH_JWT_SECRET"),
		JWTIssuer:          os.Getenv("AUTH_JWT_ISSUER"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		QuestionCount:      getEnvInt("QUESTION_COUNT", 10),
		AITimeout:          getEnvDuration("AI_TIMEOUT", 45*time.Second),
		AIMaxAttempts:      getEnvInt("AI_MAX_ATTEMPTS", 3),
		StaleStartTTL:      getEnvDuration("STALE_START_TTL", 10*time.Minute),
		StaleStartSchedule: getEnvOrDefault("STALE_START_SCHEDULE", "@every 5m"),
		SeedTemplates:      getEnvBool("SEED_TEMPLATES", true),
	}

	if config.DBDriver == "postgres" && config.DatabaseURL == "" {
		config.DatabaseURL = postgresDSNFromParts()
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// RequestTimeout bounds a request that may go through every AI attempt.
func (c *Config) RequestTimeout() time.Duration {
	return c.AITimeout*time.Duration(c.AIMaxAttempts) + 15*time.Second
}

func validateConfig(config *Config) error {
	if !supportedProviders[config.Provider] {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini, openai")
	}
	if config.DBDriver != "postgres" && config.DBDriver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER %q, expected postgres or sqlite", config.DBDriver)
	}
	if config.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET environment variable is required")
	}
	if config.QuestionCount < 1 || config.QuestionCount > 50 {
		return fmt.Errorf("QUESTION_COUNT must be between 1 and 50, got %d", config.QuestionCount)
	}
	if config.AIMaxAttempts < 1 {
		return fmt.Errorf("AI_MAX_ATTEMPTS must be at least 1, got %d", config.AIMaxAttempts)
	}
	if config.AITimeout <= 0 || config.StaleStartTTL <= 0 {
		return errors.New("AI_TIMEOUT and STALE_START_TTL must be positive durations")
	}
	// a start still inside its AI call must never look abandoned
	if config.StaleStartTTL <= config.RequestTimeout() {
		return fmt.Errorf("STALE_START_TTL (%s) must exceed the request timeout (%s)", config.StaleStartTTL, config.RequestTimeout())
	}
	// provider credentials are validated by the provider packages
	return nil
}

func postgresDSNFromParts() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnvOrDefault("POSTGRES_HOST", "localhost"),
		getEnvOrDefault("POSTGRES_USER", "postgres"),
		getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
		getEnvOrDefault("POSTGRES_DB", "interviewprep"),
		getEnvOrDefault("POSTGRES_PORT", "5432"),
		getEnvOrDefault("POSTGRES_SSLMODE", "disable"))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
