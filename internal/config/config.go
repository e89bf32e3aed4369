package config

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RateLimitPerSecond caps requests per client IP. Zero disables the limiter.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"gte=0"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"      validate:"gte=0"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	// BcryptCost controls password hashing cost. Zero means bcrypt.DefaultCost.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// DispatchConfig controls the notification dispatcher.
type DispatchConfig struct {
	// Enabled switches the background dispatcher on.
	Enabled bool `mapstructure:"enabled"`
	// IntervalSeconds is how often due notifications are collected.
	IntervalSeconds int `mapstructure:"interval_seconds" validate:"gte=0"`
	// BatchSize caps how many notifications one dispatch run picks up.
	BatchSize int `mapstructure:"batch_size" validate:"gte=0"`
}

// TwilioConfig contains credentials for the SMS channel. All fields are
// optional; when empty the SMS channel falls back to the log sender.
type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
}
