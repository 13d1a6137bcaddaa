package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKS_DATABASE_URL.
const EnvPrefix = "TASKS"

// Flag names understood by Load when a FlagSet is supplied.
const (
	FlagConfigFile = "config"
	FlagPort       = "port"
	FlagLogLevel   = "log-level"
)

// defaults holds every key with its default value. Keys without a sensible
// default (database.url, auth.jwt_secret) are still listed so the matching
// environment variables are bound.
var defaults = map[string]any{
	"server.port":                        8080,
	"server.log_level":                   "info",
	"server.api_prefix":                  "",
	"server.cors_allowed_origins":        []string{"http://localhost:5173"},
	"server.shutdown_timeout_seconds":    10,
	"database.url":                       "",
	"database.max_open_conns":            10,
	"database.max_idle_conns":            5,
	"database.conn_max_lifetime_minutes": 5,
	"database.auto_migrate":              true,
	"auth.jwt_secret":                    "",
	"auth.access_token_lifetime_minutes": 30,
	"auth.refresh_token_lifetime_days":   7,
	"auth.bcrypt_cost":                   10,
}

// RegisterFlags adds the flags Load knows how to bind to fs.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfigFile, "", "path to a config file (yaml, json or toml)")
	flags.Int(FlagPort, 0, "HTTP listen port (overrides server.port)")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn or error (overrides server.log_level)")
}

// Load reads configuration with the following precedence, highest first:
// command-line flags, environment variables, config file, .env file, defaults.
// flags may be nil. Returns a validated Config or an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if flags != nil {
		if f := flags.Lookup(FlagConfigFile); f != nil {
			configFile = f.Value.String()
		}
		if err := bindFlag(v, flags, "server.port", FlagPort); err != nil {
			return nil, err
		}
		if err := bindFlag(v, flags, "server.log_level", FlagLogLevel); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindFlag binds flag to key only when the flag exists and was set, so an
// unset flag's zero value never shadows env or file configuration.
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) error {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	if err := v.BindPFlag(key, f); err != nil {
		return fmt.Errorf("failed to bind flag --%s: %w", name, err)
	}
	return nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
