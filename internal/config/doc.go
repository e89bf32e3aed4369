// Package config defines the application configuration structure and its
// loading/validation logic. Configuration is read from environment
// variables and an optional YAML file via viper, then validated with
// go-playground/validator struct tags.
package config
