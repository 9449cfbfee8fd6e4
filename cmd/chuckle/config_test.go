package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/chuckle/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newConfigViper(), filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, model.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, model.DefaultJokeCount, cfg.JokeCount)
	assert.Equal(t, model.DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, model.DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, model.DefaultMockAddr, cfg.MockAddr)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "config.yml", `
base-url: http://127.0.0.1:3000
joke-count: 3
request-timeout: 5s
log-level: debug
`)
	cfg, err := loadConfig(newConfigViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:3000", cfg.BaseURL)
	assert.Equal(t, 3, cfg.JokeCount)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yml", "joke-count: 3\n")
	t.Setenv("CHUCKLE_JOKE_COUNT", "7")
	t.Setenv("CHUCKLE_BASE_URL", "http://env.test")

	cfg, err := loadConfig(newConfigViper(), path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.JokeCount)
	assert.Equal(t, "http://env.test", cfg.BaseURL)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"zero joke count", "joke-count: 0\n", "joke-count must be positive"},
		{"negative timeout", "request-timeout: -1s\n", "request-timeout must be positive"},
		{"malformed yaml", "joke-count: [\n", "reading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(newConfigViper(), writeFile(t, "config.yml", tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "CHUCKLE_TEST_DOTENV=from-file\n")
	t.Setenv("CHUCKLE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("CHUCKLE_TEST_DOTENV"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("CHUCKLE_TEST_DOTENV"))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")), "a missing file is not an error")
}
