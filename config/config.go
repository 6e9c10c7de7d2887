package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	// OpenAI Configuration
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	OpenAIMaxRetries   int
	OpenAITimeoutSecs  int
	MinAnswerLength    int
	// Redis Configuration (stats cache)
	RedisURL          string
	RedisPassword     string
	StatsCacheTTLSecs int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// OpenAI Configuration
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIMaxRetries:  getEnvInt("OPENAI_MAX_RETRIES", 2),
		OpenAITimeoutSecs: getEnvInt("OPENAI_TIMEOUT_SECONDS", 30),
		MinAnswerLength:   getEnvInt("MIN_ANSWER_LENGTH", 10),
		// Redis Configuration
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		StatsCacheTTLSecs: getEnvInt("STATS_CACHE_TTL_SECONDS", 60),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is missing. Question generation and evaluation will fail.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. All authenticated requests will be rejected.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Stats caching disabled.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
