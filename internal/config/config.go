// Package config loads runtime settings from the environment, with an
// optional .env overlay for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Development fallbacks for the signing secrets. Running with either of
// these is a security risk; Load reports them so the caller can warn loudly.
const (
	defaultAccessSecret  = "mysecretkey"
	defaultRefreshSecret = "myrefreshsecretkey"
)

type Config struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"notekeeper"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"notekeeper"`
	DBName     string `env:"DB_NAME" envDefault:"notekeeper"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	AccessSecret  string        `env:"SECRET_KEY" envDefault:"mysecretkey"`
	RefreshSecret string        `env:"REFRESH_SECRET_KEY" envDefault:"myrefreshsecretkey"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
}

// Load reads the optional .env file and then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// InsecureDefaults lists the names of signing secrets still set to their
// built-in development values. A non-empty result must be surfaced as a
// warning at startup.
func (c *Config) InsecureDefaults() []string {
	var names []string
	if c.AccessSecret == defaultAccessSecret {
		names = append(names, "SECRET_KEY")
	}
	if c.RefreshSecret == defaultRefreshSecret {
		names = append(names, "REFRESH_SECRET_KEY")
	}
	return names
}
