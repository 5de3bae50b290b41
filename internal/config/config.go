package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	QRSigningSecret string
	AccessTokenTTL  time.Duration
	CollectTokenTTL time.Duration
	AllowedOrigins  []string
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development. A missing signing secret is a configuration
// error and must abort startup, not surface per request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getenv("ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		QRSigningSecret: os.Getenv("QR_SIGNING_SECRET"),
		AccessTokenTTL:  24 * time.Hour,
		CollectTokenTTL: 10 * time.Minute,
		AllowedOrigins:  []string{getenv("FRONTEND_ORIGIN", "http://localhost:3000")},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is empty")
	}
	if cfg.QRSigningSecret == "" {
		// Historically the collection tokens fell back to the auth secret.
		cfg.QRSigningSecret = cfg.JWTSecret
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
