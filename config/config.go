package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultDotEnvPath = ".env"

type Config struct {
	Env      string     `env:"ENV" envDefault:"local"`
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	Database DatabaseConfig
	Page     PageConfig     `envPrefix:"PAGE_"`
}

type DatabaseConfig struct {
	// Dialect is one of postgres, mysql, sqlite.
	Dialect string `env:"DB_DIALECT" envDefault:"sqlite"`
	URL     string `env:"DATABASE_URL"`
	Debug   bool   `env:"DB_DEBUG" envDefault:"false"`
}

type PageConfig struct {
	DefaultSize int `env:"DEFAULT_SIZE" envDefault:"20"`
	MaxSize     int `env:"MAX_SIZE" envDefault:"100"`
}

// Load reads the optional .env file (ENV_PATH overrides its location) and
// parses the environment into Config.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("cannot parse environment: %w", err)
	}

	if err = validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv() error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = defaultDotEnvPath
	}

	err := godotenv.Load(envPath)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist) && os.Getenv("ENV_PATH") == "":
		slog.Debug("Skipping .env ...", "path", envPath)
		return nil
	default:
		return fmt.Errorf("cannot load %s: %w", envPath, err)
	}
}

func validate(c *Config) error {
	switch c.Database.Dialect {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DIALECT '%s'", c.Database.Dialect)
	}

	if c.Database.URL == "" {
		if c.Database.Dialect != "sqlite" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.Database.Dialect)
		}
		c.Database.URL = "file::memory:"
	}

	if c.Page.MaxSize <= 0 {
		return fmt.Errorf("PAGE_MAX_SIZE must be positive, got %d", c.Page.MaxSize)
	}

	if c.Page.DefaultSize <= 0 || c.Page.DefaultSize > c.Page.MaxSize {
		return fmt.Errorf("PAGE_DEFAULT_SIZE must be in [1, %d], got %d", c.Page.MaxSize, c.Page.DefaultSize)
	}

	return nil
}
