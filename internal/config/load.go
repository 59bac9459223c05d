package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config
// file. Environment variables take precedence over values from config
// files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("VOCADRILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys only resolve from the environment once bound.
	keys := []string{
		"server.port",
		"server.log_level",
		"server.shutdown_timeout_seconds",
		"database.url",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_life_minutes",
		"database.auto_migrate",
		"database.migrations_table",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"cache.ttl_minutes",
		"cache.max_entries",
		"cache.sweep_interval_minutes",
		"quiz.default_count",
		"quiz.distractor_pool",
		"quiz.audit_enabled",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine, environment variables carry the rest.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the defaults every deployment shares.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_life_minutes", 30)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.migrations_table", "goose_db_version")

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.sweep_interval_minutes", 5)

	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.distractor_pool", 20)
	v.SetDefault("quiz.audit_enabled", false)
}
