// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), loads them into structured Go types (struct), and
// validates them so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on bad config.
//   - Provide sane defaults, so an empty environment still boots on :3002.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into process env
	// *before* the providers below read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	`koanf` reads config sources and unmarshals them into the structs below.

	Two env sources are read, in this order (later wins):
	- Variables with the prefix USERS_. The prefix is dropped, keys are
	  lowercased, and a double underscore marks nesting:
	    USERS_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
	- The bare PORT variable, mapped onto server.port.
*/

const (
	// EnvPrefix is the prefix for every namespaced environment variable.
	EnvPrefix = "USERS_"

	// PortEnv is the bare variable holding the listening port.
	PortEnv = "PORT"

	// DefaultPort is used when neither PORT nor USERS_SERVER__PORT is set.
	DefaultPort = "3002"

	// ServiceName tags logs and traces.
	ServiceName = "user-service"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are used by go-playground/validator.
type Config struct {
	Primary       Primary             `koanf:"primary" validate:"required"`
	Server        ServerConfig        `koanf:"server" validate:"required"`
	Observability ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
// Usually used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required,numeric"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"gte=0"`

	// CORSAllowedOrigins is a space separated origin list.
	// Empty means CORS middleware is not installed at all.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// AllowedOrigins splits CORSAllowedOrigins into a slice.
func (s ServerConfig) AllowedOrigins() []string {
	return strings.Fields(s.CORSAllowedOrigins)
}

// DefaultConfig returns the configuration used when the environment is empty.
//
// LoadConfig unmarshals on top of this value, so every key that is not set
// in the environment keeps its default.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:         DefaultPort,
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
		},
		Observability: *DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix USERS_, then the bare PORT variable
//   - Unmarshals them over DefaultConfig()
//   - Validates struct tags, then the observability rules
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s env variables: %w", EnvPrefix, err)
	}

	// The prefix also matches things like PORTAL_URL, so the callback only
	// keeps the exact name. Returning "" tells koanf to skip the variable.
	err = k.Load(env.Provider(PortEnv, ".", func(s string) string {
		if s != PortEnv {
			return ""
		}
		return "server.port"
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s env variable: %w", PortEnv, err)
	}

	mainConfig := DefaultConfig()

	// The first argument is the key path to unmarshal from.
	// Using "" means "unmarshal everything from the root".
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Force service name and environment values regardless of what user set.
	// This keeps tracing/logging naming consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Validate observability config using its own validation logic.
	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
