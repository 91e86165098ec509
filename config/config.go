package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Environment        string
	DataFile           string
	DataRefreshMinutes int
	JWTSecret          string
	AdminUsername      string
	AdminPasswordHash  string
}

var AppConfig *Config

// LoadConfig loads environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DataFile:           getEnv("DATA_FILE", "data/all_stocks_predictions.xlsx"),
		DataRefreshMinutes: getEnvInt("DATA_REFRESH_MINUTES", 30),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key"),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	AppConfig = config
	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using default %d", key, err, defaultValue)
		return defaultValue
	}
	return parsed
}
