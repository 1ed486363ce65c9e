package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables use the TASKNEST_ prefix with
// underscores for nesting (e.g. TASKNEST_SERVER_PORT) and take
// precedence over values from config.yaml in the working directory.
// Returns a populated Config struct or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one. Secrets do not.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars can carry everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("TASKNEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not register keys for Unmarshal; bind explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env var for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
