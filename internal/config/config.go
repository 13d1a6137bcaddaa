package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// APIPrefix is prepended to every route except the health checks, e.g. "/api/v1".
	APIPrefix              string   `mapstructure:"api_prefix"               validate:"omitempty,startswith=/"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown window.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication settings. Changing JWTSecret
// invalidates every outstanding token.
type AuthConfig struct {
	JWTSecret                  string `mapstructure:"jwt_secret"                    validate:"required,min=32"`
	AccessTokenLifetimeMinutes int    `mapstructure:"access_token_lifetime_minutes" validate:"required,gte=1,lte=1440"`
	RefreshTokenLifetimeDays   int    `mapstructure:"refresh_token_lifetime_days"   validate:"required,gte=1,lte=365"`
	BcryptCost                 int    `mapstructure:"bcrypt_cost"                   validate:"gte=4,lte=31"`
}

// AccessTokenLifetime converts the configured minutes to a duration.
func (c AuthConfig) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenLifetimeMinutes) * time.Minute
}

// RefreshTokenLifetime converts the configured days to a duration.
func (c AuthConfig) RefreshTokenLifetime() time.Duration {
	return time.Duration(c.RefreshTokenLifetimeDays) * 24 * time.Hour
}
