package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Alerts
	// Balance threshold (in cents) below which a one-shot low-balance
	// alert is raised. 200000 = 2000 currency units.
	LowBalanceThreshold int64

	// Insights
	GeminiModel string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fintrack"),
		DBPassword: getEnv("DB_PASSWORD", "fintrack"),
		DBName:     getEnv("DB_NAME", "fintrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Insights
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	// Parse the low-balance threshold
	thresholdStr := getEnv("LOW_BALANCE_THRESHOLD", "200000")
	threshold, err := strconv.ParseInt(thresholdStr, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid LOW_BALANCE_THRESHOLD value '%s', falling back to 200000\n", thresholdStr)
		threshold = 200000
	}
	config.LowBalanceThreshold = threshold

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
