package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration, populated from environment variables.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR, default=:8080"`
	GinMode    string `env:"GIN_MODE, default=debug"`
	LogLevel   string `env:"LOG_LEVEL, default=info"`

	DBDriver   string `env:"DB_DRIVER, default=mysql"`
	DBHost     string `env:"DB_HOST, default=localhost"`
	DBPort     string `env:"DB_PORT, default=3306"`
	DBUser     string `env:"DB_USER, default=usermgmt"`
	DBPassword string `env:"DB_PASSWORD, default=usermgmt"`
	DBName     string `env:"DB_NAME, default=user_management"`

	// AuthEnabled guards the management API behind session authentication.
	AuthEnabled   bool   `env:"AUTH_ENABLED, default=false"`
	RedisHost     string `env:"REDIS_HOST, default=localhost"`
	RedisPort     string `env:"REDIS_PORT, default=6379"`
	SessionSecret string `env:"SESSION_SECRET, default=default-secret-key-change-me"`
}

// Load populates a Config from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
