package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by Load.
const (
	EnvAPIURL     = "SPRINTSYNC_API_URL"
	EnvAPITimeout = "SPRINTSYNC_API_TIMEOUT"
	EnvLogFile    = "SPRINTSYNC_LOG_FILE"
	EnvStateDir   = "SPRINTSYNC_STATE_DIR"
)

// Config holds all configuration for the client.
type Config struct {
	API   APIConfig
	Log   LogConfig
	State StateConfig
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Filename string
}

// StateConfig holds local storage settings (credentials, logs).
type StateConfig struct {
	Dir string
}

// NewConfig returns the configuration defaults.
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	stateDir := filepath.Join(homeDir, ".sprintsync")

	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Filename: filepath.Join(stateDir, "debug.log"),
		},
		State: StateConfig{
			Dir: stateDir,
		},
	}
}

// Load builds the configuration: defaults first, then an optional .env
// file, then environment variables, then validation.
func Load() (*Config, error) {
	// a missing .env file is fine; plain environment variables still apply
	_ = godotenv.Load()

	cfg := NewConfig()
	cfg.loadFromEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromEnvironment() {
	if baseURL := os.Getenv(EnvAPIURL); baseURL != "" {
		c.API.BaseURL = baseURL
	}

	if timeout := os.Getenv(EnvAPITimeout); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.API.Timeout = d
		}
	}

	if filename := os.Getenv(EnvLogFile); filename != "" {
		c.Log.Filename = filename
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		c.State.Dir = dir
	}
}

// CredentialPath returns the full path of the credential database.
func (c *Config) CredentialPath() string {
	return filepath.Join(c.State.Dir, "credentials.sqlite")
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.base_url", Message: "base URL cannot be empty"}
	}

	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return &ConfigError{Field: "api.base_url", Message: "base URL is not a valid URL"}
	}

	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "timeout must be positive"}
	}

	if c.Log.Filename == "" {
		return &ConfigError{Field: "log.filename", Message: "log filename cannot be empty"}
	}

	if c.State.Dir == "" {
		return &ConfigError{Field: "state.dir", Message: "state directory cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
