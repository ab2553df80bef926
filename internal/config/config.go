package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	HTTPAddr     string

	// Collaborator wiring: with BackendBaseURL set the resolver talks to the
	// operations backend REST API; otherwise DBDSN must point at the
	// operations database replica.
	BackendBaseURL string
	BackendAPIKey  string
	DBDSN          string

	// ContractingBaseURL is where purchase orders are submitted. The
	// authoritative capacity check lives behind it, so it is required even
	// when availability is read straight from the database replica.
	ContractingBaseURL string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret         string
	JWTAccessTokenTTL time.Duration

	DefaultWindowDays int
	PollInterval      time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists; missing files are fine.
	_ = godotenv.Load()

	cfg := &Config{}

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == prodString

	if origins := getEnv("PROD_ORIGINS", ""); origins != "" {
		cfg.ProdOrigins = strings.Split(origins, ",")
	}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.BackendBaseURL = getEnv("BACKEND_BASE_URL", "")
	cfg.BackendAPIKey = getEnv("BACKEND_API_KEY", "")
	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.BackendBaseURL == "" && cfg.DBDSN == "" {
		return nil, fmt.Errorf("either BACKEND_BASE_URL or DB_DSN is required")
	}

	cfg.ContractingBaseURL = getEnv("CONTRACTING_BASE_URL", cfg.BackendBaseURL)
	if cfg.ContractingBaseURL == "" {
		return nil, fmt.Errorf("CONTRACTING_BASE_URL is required when BACKEND_BASE_URL is unset")
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	var err error
	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	cfg.DefaultWindowDays, err = getEnvAsInt("DEFAULT_WINDOW_DAYS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_WINDOW_DAYS: %w", err)
	}

	cfg.PollInterval, err = getEnvAsDuration("POLL_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "15s", "1m"). It returns the default value if the variable is not set.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
