// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	DBPath      string
	StaticDir   string

	GeminiAPIKey     string
	GeminiBaseURL    string
	TextModel        string
	GeminiMaxRetries int
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "3000"),
		Environment:      env,
		DBPath:           getEnv("DB_PATH", "agri_gateway.db"),
		StaticDir:        getEnv("STATIC_DIR", "web/static"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		TextModel:        getEnv("TEXT_MODEL", "gemini-1.5-flash-latest"),
		GeminiMaxRetries: getEnvAsInt("GEMINI_MAX_RETRIES", 3),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		if cfg.GeminiAPIKey == "" {
			log.Fatalf("Missing required production environment variable: GEMINI_API_KEY")
		}
	} else if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set. Upstream calls will fail.")
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
