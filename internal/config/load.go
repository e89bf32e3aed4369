package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (SALON_ prefix)
// and an optional config.yaml in the working directory. Environment
// variables take precedence over file values. Returns a populated,
// validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SALON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface keys that lack defaults, so
	// every secret-bearing key gets an explicit binding.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"database.url", "SALON_DATABASE_URL"},
		{"auth.jwt_secret", "SALON_AUTH_JWT_SECRET"},
		{"twilio.account_sid", "SALON_TWILIO_ACCOUNT_SID"},
		{"twilio.auth_token", "SALON_TWILIO_AUTH_TOKEN"},
		{"twilio.from_number", "SALON_TWILIO_FROM_NUMBER"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env.envVar, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.rate_limit_per_second", 0)
	v.SetDefault("server.rate_limit_burst", 0)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 0)
	v.SetDefault("dispatch.enabled", false)
	v.SetDefault("dispatch.interval_seconds", 60)
	v.SetDefault("dispatch.batch_size", 50)
}
