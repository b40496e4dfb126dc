package config

import (
	"log"
	"os"
	"strconv"
	"time"

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

	// Rates feed
	RatesFeedURL         string
	RatesRefreshInterval time.Duration

	// Settlement policy: when true, an item settled to exactly zero is
	// soft-deleted instead of remaining as a zero-balance record.
	SettlementAutoDelete bool
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "patrimonio"),
		DBPassword: getEnv("DB_PASSWORD", "patrimonio"),
		DBName:     getEnv("DB_NAME", "patrimonio"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Rates feed (empty URL disables the background refresher)
		RatesFeedURL: getEnv("RATES_FEED_URL", ""),
	}

	// Parse rates refresh interval
	intervalStr := getEnv("RATES_REFRESH_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		log.Printf("Warning: invalid RATES_REFRESH_INTERVAL value '%s', falling back to 30m\n", intervalStr)
		interval = 30 * time.Minute
	}
	config.RatesRefreshInterval = interval

	autoDelete, err := strconv.ParseBool(getEnv("SETTLEMENT_AUTO_DELETE", "false"))
	if err != nil {
		log.Println("Warning: invalid SETTLEMENT_AUTO_DELETE value, falling back to false")
		autoDelete = false
	}
	config.SettlementAutoDelete = autoDelete

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
