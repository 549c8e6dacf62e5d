// Package config loads smppctl's configuration from a YAML file,
// SMPPCTL_-prefixed environment variables, and built-in defaults, in
// that precedence order (env overrides file overrides defaults).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the top-level configuration for both the smppctl client
// commands and the "serve" SMSC-role acceptor.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Bind    BindConfig    `mapstructure:"bind"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// LoggingConfig controls the process logger (internal/logger.Config).
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Path    string `mapstructure:"path"`
}

// SessionConfig mirrors session.Config's durations in a
// serializable, validated form.
type SessionConfig struct {
	EnquireLinkInterval  time.Duration `mapstructure:"enquire_link_interval" validate:"required,gt=0"`
	ResponseTimeout      time.Duration `mapstructure:"response_timeout" validate:"required,gt=0"`
	SessionBindTimeout   time.Duration `mapstructure:"bind_timeout" validate:"required,gt=0"`
	GracefulCloseTimeout time.Duration `mapstructure:"graceful_close_timeout" validate:"required,gt=0"`
	MaxFrameSize         int           `mapstructure:"max_frame_size" validate:"required,gt=0"`
}

// BindConfig carries the credentials the client uses to bind as an
// ESME against a remote SMSC (smppctl bind/submit).
type BindConfig struct {
	Host         string `mapstructure:"host"`
	SystemID     string `mapstructure:"system_id"`
	Password     string `mapstructure:"password"`
	SystemType   string `mapstructure:"system_type"`
	AddressRange string `mapstructure:"address_range"`
}

// ServeConfig controls smppctl serve's listener.
type ServeConfig struct {
	Addr        string            `mapstructure:"addr"`
	Credentials map[string]string `mapstructure:"credentials"` // system_id -> password
}

// Defaults returns a Config with every field populated from the
// built-in defaults, before any file or environment overrides apply.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
		Metrics: MetricsConfig{Enabled: false, Addr: ":9106", Path: "/metrics"},
		Session: SessionConfig{
			EnquireLinkInterval:  30 * time.Second,
			ResponseTimeout:      10 * time.Second,
			SessionBindTimeout:   5 * time.Second,
			GracefulCloseTimeout: 5 * time.Second,
			MaxFrameSize:         64 * 1024,
		},
		Bind:  BindConfig{SystemType: "", AddressRange: ""},
		Serve: ServeConfig{Addr: ":2775"},
	}
}

// Load reads configPath (if non-empty) and SMPPCTL_-prefixed
// environment variables on top of Defaults, then validates the
// result. An empty configPath skips the file and uses environment
// variables and defaults only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SMPPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", configPath, err)
		}
	}

	cfg := Defaults()
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks cfg's struct tags with go-playground/validator.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	return nil
}
