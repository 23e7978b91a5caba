package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string
	GinMode  string // debug, release or test
	LogLevel string

	DatabaseDriver string // postgres or sqlite
	DatabaseURL    string
	RedisURL       string // optional; login throttle falls back to memory

	SessionSecret string
	SessionMaxAge time.Duration

	BcryptCost int

	LoginView     string // where the client goes after creating an account
	DashboardView string // where the client goes after logging in

	CORSAllowedOrigins string // comma separated

	RateLimitAuthRPS   float64 // requests per second per IP on auth routes
	RateLimitAuthBurst int

	LoginMaxAttempts int // failed logins per IP inside LoginWindow; 0 (default) disables
	LoginWindow      time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseURL:    getEnv("DATABASE_URL", "file:accounts.db"),
		RedisURL:       getEnv("REDIS_URL", ""),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionMaxAge: getEnvDuration("SESSION_MAX_AGE", 24*time.Hour),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		LoginView:     getEnv("LOGIN_VIEW", "/login.html"),
		DashboardView: getEnv("DASHBOARD_VIEW", "/dashboard.html"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),

		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),

		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 0),
		LoginWindow:      getEnvDuration("LOGIN_WINDOW", 15*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without. Release mode
// refuses the development fallbacks.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.LoginMaxAttempts < 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must not be negative")
	}

	if c.GinMode == "release" {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required in release mode")
		}
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 bytes in release mode")
		}
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
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
