package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration. It is loaded once at startup
// and passed by reference; business logic never reads the environment.
type Config struct {
	Environment string
	ServerPort  int
	DatabaseURL string

	// JWTSecret signs session tokens. There is deliberately no development
	// fallback: startup fails when it is unset.
	JWTSecret string

	FrontendURL string
	LogLevel    string

	// Rate limits, requests per minute per client
	RateLimitGeneral int
	RateLimitAuth    int

	BcryptCost int
}

// Load reads configuration from environment variables.
// All missing required variables are reported in a single error.
func Load() (*Config, error) {
	var missing []string

	portStr := os.Getenv("PORT")
	if portStr == "" {
		missing = append(missing, "PORT")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	rateGeneral, err := strconv.Atoi(getEnv("RATE_LIMIT_GENERAL", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_GENERAL: %w", err)
	}

	rateAuth, err := strconv.Atoi(getEnv("RATE_LIMIT_AUTH", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST out of range: %d", bcryptCost)
	}

	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		ServerPort:       port,
		DatabaseURL:      databaseURL,
		JWTSecret:        jwtSecret,
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RateLimitGeneral: rateGeneral,
		RateLimitAuth:    rateAuth,
		BcryptCost:       bcryptCost,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
