// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the server process.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file. Parent directories are created
	// on startup if missing.
	DBPath string `env:"DB_PATH" envDefault:"./data/splitr.db"`

	// JWTSecret signs session tokens. The default is only for local
	// development.
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// TokenTTL is the lifetime of issued session tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load reads a .env file if present, then parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
