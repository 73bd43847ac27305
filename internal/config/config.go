// Package config loads callctl configuration from defaults, an optional
// YAML file, and CALLCTL_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/grandcallpro/callctl/internal/errors"
)

// Environment selects one of the built-in API profiles
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTest        Environment = "test"
	EnvProduction  Environment = "production"
)

// profileURLs maps each environment to its API base URL
var profileURLs = map[Environment]string{
	EnvDevelopment: "http://localhost:8081",
	EnvTest:        "https://api.tst.grandcallpro.com",
	EnvProduction:  "https://api.grandcallpro.com",
}

// Config holds all callctl settings
type Config struct {
	// Environment selects the API profile when BaseURL is not set explicitly
	Environment Environment `yaml:"environment" envconfig:"ENV"`

	// BaseURL overrides the profile-selected API base URL
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// RequestTimeout bounds every API call
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`

	// ConfirmTimeout bounds the session confirmation check on startup
	ConfirmTimeout time.Duration `yaml:"confirm_timeout" envconfig:"CONFIRM_TIMEOUT"`

	// StateDir is where the session record lives (default ~/.callctl)
	StateDir string `yaml:"state_dir" envconfig:"STATE_DIR"`

	// LogLevel is debug, info, warn, or error
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// LogFormat is text or json
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
}

// DefaultDir returns the default state directory (~/.callctl)
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "cannot resolve home directory", err)
	}
	return filepath.Join(home, ".callctl"), nil
}

// DefaultConfigPath returns the default config file path (~/.callctl/config.yaml)
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func defaults() Config {
	return Config{
		Environment:    EnvDevelopment,
		RequestTimeout: 10 * time.Second,
		ConfirmTimeout: 5 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds the effective configuration.
//
// Precedence, lowest to highest: built-in defaults, the YAML file at path
// (missing file is fine), CALLCTL_* environment variables. An explicit
// BaseURL beats the environment profile.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.NewConfigUnmarshalError(path, err)
			}
		case os.IsNotExist(err):
			// defaults apply
		default:
			return nil, errors.Wrap(errors.ErrCodeConfigNotFound, fmt.Sprintf("cannot read config file: %s", path), err)
		}
	}

	if err := envconfig.Process("callctl", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigEnvInvalid, "invalid CALLCTL_* environment variable", err)
	}

	if _, ok := profileURLs[cfg.Environment]; !ok {
		return nil, errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown environment %q", cfg.Environment)).
			WithSuggestion("Use one of: development, test, production")
	}

	if cfg.StateDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = dir
	}

	return &cfg, nil
}

// APIBaseURL returns the effective API base URL
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return profileURLs[c.Environment]
}
