package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const defaultPort = "8080"

type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	BcryptCost          int
	CORSOrigins         []string
	LogLevel            string
	AWSRegion           string
	AvatarBucket        string
	OrphanSweepInterval time.Duration
}

// LoadConfig reads the environment, loading a .env file first unless the
// process runs on Render.
func LoadConfig() (*Config, error) {
	if os.Getenv("RENDER") == "" {
		// Missing .env is fine; system environment is used instead.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:         envOr("PORT", defaultPort),
		DatabaseURL:  os.Getenv("DB_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		BcryptCost:   bcrypt.DefaultCost,
		CORSOrigins:  splitList(envOr("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		AWSRegion:    os.Getenv("AWS_REGION"),
		AvatarBucket: os.Getenv("AWS_BUCKET_NAME"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set in environment variables")
	}

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", raw, err)
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.BcryptCost = cost
	}

	if raw := os.Getenv("ORPHAN_SWEEP_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ORPHAN_SWEEP_INTERVAL %q: %w", raw, err)
		}
		cfg.OrphanSweepInterval = d
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
