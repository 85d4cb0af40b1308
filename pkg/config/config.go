package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	AppEnv            string        `env:"APP_ENV" envDefault:"production"`
	Port              string        `env:"PORT" envDefault:"8080"`
	DBDriver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"host=localhost user=postgres password=postgres dbname=todos port=5432 sslmode=disable"`
	DBLogLevel        string        `env:"DB_LOG_LEVEL" envDefault:"warn"`
	JWTSecret         string        `env:"JWT_SECRET"`
	JWTAccessExpiry   time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"30m"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"10"`
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN"`
	OtelEnabled       bool          `env:"OTEL_ENABLED" envDefault:"true"`
	OtelEndpoint      string        `env:"OTEL_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func (c *Config) validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}

	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required")
		}
		log.Println("[Config] JWT_SECRET not set, using development secret")
		c.JWTSecret = devJWTSecret
	}
	if c.JWTAccessExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %s", c.JWTAccessExpiry)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
