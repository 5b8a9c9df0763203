package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the configuration for the PKCE generator and the OAuth client
// that consumes it.
type Config struct {
	LogLevel       string   `json:"log_level" validate:"oneof=debug info warn error"`
	StrictVerifier bool     `json:"strict_verifier"`
	VerifierTTL    Duration `json:"verifier_ttl" validate:"min=1s"`

	OAuth struct {
		ClientID     string   `json:"client_id" validate:"required"`
		ClientSecret string   `json:"client_secret"`
		AuthURL      string   `json:"auth_url" validate:"required,url"`
		TokenURL     string   `json:"token_url" validate:"required,url"`
		RedirectURL  string   `json:"redirect_url" validate:"required,url"`
		Scopes       []string `json:"scopes"`
	} `json:"oauth"`
}

// Duration is a wrapper around time.Duration that implements JSON marshaling/unmarshaling
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("invalid duration")
	}
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Default returns a Config with defaults for every optional field.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		VerifierTTL: Duration{10 * time.Minute},
	}
}

// Load reads configuration from a file and overrides with environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides overrides config fields with environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PKCE_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("PKCE_STRICT_VERIFIER"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing PKCE_STRICT_VERIFIER: %w", err)
		}
		c.StrictVerifier = strict
	}

	if v := os.Getenv("PKCE_VERIFIER_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing PKCE_VERIFIER_TTL: %w", err)
		}
		c.VerifierTTL = Duration{d}
	}

	// OAuth overrides
	if v := os.Getenv("OAUTH_CLIENT_ID"); v != "" {
		c.OAuth.ClientID = v
	}
	if v := os.Getenv("OAUTH_CLIENT_SECRET"); v != "" {
		c.OAuth.ClientSecret = v
	}
	if v := os.Getenv("OAUTH_AUTH_URL"); v != "" {
		c.OAuth.AuthURL = v
	}
	if v := os.Getenv("OAUTH_TOKEN_URL"); v != "" {
		c.OAuth.TokenURL = v
	}
	if v := os.Getenv("OAUTH_REDIRECT_URL"); v != "" {
		c.OAuth.RedirectURL = v
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	validate := validator.New()

	// Register custom validation for Duration
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if duration, ok := field.Interface().(Duration); ok {
			return duration.Duration
		}
		return nil
	}, Duration{})

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
