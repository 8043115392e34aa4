package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings, read from the environment.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// Cloudflare R2 object storage.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// OpenAI-compatible vision endpoint used for screenshot analysis.
	AnalyzerBaseURL string
	AnalyzerAPIKey  string
	AnalyzerModel   string
	AnalyzerTimeout time.Duration

	// How often the dashboard standings cache is recomputed.
	RefreshInterval time.Duration
}

// Load reads the configuration from environment variables. A .env file is
// loaded first if present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecretKey:      os.Getenv("JWT_SECRET_KEY"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		AnalyzerBaseURL:   os.Getenv("ANALYZER_BASE_URL"),
		AnalyzerAPIKey:    os.Getenv("ANALYZER_API_KEY"),
		AnalyzerModel:     os.Getenv("ANALYZER_MODEL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.AnalyzerModel == "" {
		cfg.AnalyzerModel = "gpt-4o"
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	cfg.AnalyzerTimeout, err = durationEnv("ANALYZER_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval, err = durationEnv("STANDINGS_REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", name, v)
	}
	return v, nil
}
