package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the application.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	// Session tokens are HS256 JWTs carried in an HttpOnly cookie.
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`

	// Optional S3-compatible object store for uploaded listing images.
	// When Endpoint is empty the upload path is disabled and listings carry
	// whatever image URL the seller typed in.
	ImageStore struct {
		Endpoint        string `env:"IMAGE_STORE_ENDPOINT"`
		AccessKeyID     string `env:"IMAGE_STORE_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"IMAGE_STORE_SECRET_ACCESS_KEY"`
		Bucket          string `env:"IMAGE_STORE_BUCKET"`
		Region          string `env:"IMAGE_STORE_REGION"`
		UseSSL          bool   `env:"IMAGE_STORE_USE_SSL"`
		PublicBaseURL   string `env:"IMAGE_STORE_PUBLIC_BASE_URL"`
	}
}

// LoadConfig loads configuration from environment variables.
// In development a .env file is read first, when present.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration from environment: %w", err)
	}

	// env.Parse handles "required" and type parsing; defaults are set by hand.
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return &cfg, nil
}

// ImageStoreEnabled reports whether an object store is configured.
func (c *Config) ImageStoreEnabled() bool {
	return c.ImageStore.Endpoint != ""
}
