package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"sprintsync/pkg/config"

	"github.com/stretchr/testify/assert"
)

// clearEnv blanks the recognized variables so defaults apply regardless of
// the host environment. t.Setenv also blocks t.Parallel, which these tests
// must avoid anyway since they share the process environment.
func clearEnv(t *testing.T) {
	t.Helper()

	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPITimeout, "")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv(config.EnvStateDir, "")
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)

	clearEnv(t)

	cfg, err := config.Load()
	assert.Nil(err)
	assert.Equal("http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(30*time.Second, cfg.API.Timeout)
	assert.NotEmpty(cfg.State.Dir)
	assert.NotEmpty(cfg.Log.Filename)
}

func TestEnvironmentOverrides(t *testing.T) {
	assert := assert.New(t)

	clearEnv(t)
	t.Setenv(config.EnvAPIURL, "https://sync.example.com")
	t.Setenv(config.EnvAPITimeout, "10s")
	t.Setenv(config.EnvLogFile, "/tmp/sprintsync.log")
	t.Setenv(config.EnvStateDir, "/tmp/sprintsync")

	cfg, err := config.Load()
	assert.Nil(err)
	assert.Equal("https://sync.example.com", cfg.API.BaseURL)
	assert.Equal(10*time.Second, cfg.API.Timeout)
	assert.Equal("/tmp/sprintsync.log", cfg.Log.Filename)
	assert.Equal("/tmp/sprintsync", cfg.State.Dir)
}

func TestUnparseableTimeoutKeepsDefault(t *testing.T) {
	assert := assert.New(t)

	clearEnv(t)
	t.Setenv(config.EnvAPITimeout, "soon")

	cfg, err := config.Load()
	assert.Nil(err)
	assert.Equal(30*time.Second, cfg.API.Timeout)
}

func TestValidateBadURL(t *testing.T) {
	assert := assert.New(t)

	cfg := config.NewConfig()
	cfg.API.BaseURL = "not a url"

	err := cfg.Validate()
	assert.NotNil(err)
	assert.Equal("api.base_url: base URL is not a valid URL", err.Error())
}

func TestValidateEmptyURL(t *testing.T) {
	assert := assert.New(t)

	cfg := config.NewConfig()
	cfg.API.BaseURL = ""

	err := cfg.Validate()
	assert.NotNil(err)
	assert.Equal("api.base_url: base URL cannot be empty", err.Error())
}

func TestValidateTimeout(t *testing.T) {
	assert := assert.New(t)

	cfg := config.NewConfig()
	cfg.API.Timeout = 0

	err := cfg.Validate()
	assert.NotNil(err)
	assert.Equal("api.timeout: timeout must be positive", err.Error())
}

func TestCredentialPath(t *testing.T) {
	assert := assert.New(t)

	cfg := config.NewConfig()
	cfg.State.Dir = "/tmp/sprintsync"

	assert.Equal(filepath.Join("/tmp/sprintsync", "credentials.sqlite"), cfg.CredentialPath())
}
