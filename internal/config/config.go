package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration for both the client CLI and the
// development server.
type Config struct {
	Env string

	// Client
	APIBaseURL   string
	AnalyticsURL string
	HTTPTimeout  time.Duration

	// Dev server
	Port string

	// JWT
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Demo two-factor code accepted by the dev server.
	TwoFactorDemoCode string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:8080"),
		AnalyticsURL: getEnv("ANALYTICS_URL", "http://localhost:8000"),
		HTTPTimeout:  getDuration("HTTP_TIMEOUT", 10*time.Second),

		Port: getEnv("PORT", "8080"),

		JWTSecret:       getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		TwoFactorDemoCode: getEnv("TWO_FACTOR_DEMO_CODE", "123456"),
	}

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

// getDuration retrieves a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
