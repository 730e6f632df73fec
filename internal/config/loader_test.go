package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esanchezm/megaverse/internal/megaverse"
)

// writeConfigFile writes content as config.yaml in dir.
func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()

	loadedConfig, err := LoadConfig(tempDir)
	assert.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	loadedConfig, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	writeConfigFile(t, tempDir, `
candidateId: abc-123
baseURL: http://localhost:9000
retry:
  maxAttempts: 3
  interval: 250ms
`)

	cfg, err := LoadConfig(tempDir)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", cfg.CandidateID)
	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Interval)

	// untouched fields keep their defaults
	assert.Equal(t, megaverse.DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)

	assert.Equal(t, megaverse.RetryConfig{MaxAttempts: 3, Interval: 250 * time.Millisecond}, cfg.ClientRetry())
}

func TestLoadConfig_Malformed(t *testing.T) {
	tempDir := t.TempDir()
	writeConfigFile(t, tempDir, "retry: [not, a, map\n")

	_, err := LoadConfig(tempDir)
	assert.ErrorContains(t, err, "error loading config")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tempDir := t.TempDir()
	writeConfigFile(t, tempDir, `
baseURL: not a url
retry:
  maxAttempts: 0
`)

	_, err := LoadConfig(tempDir)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "baseURL")
	assert.Contains(t, err.Error(), "retry.maxAttempts")
}

func TestGetDefaultConfigPath(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/test", nil }
	assert.Equal(t, filepath.Join("/home/test", ".config/megaverse"), GetDefaultConfigPath())

	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	assert.Empty(t, GetDefaultConfigPath())
}

func TestTimeout(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.HTTPTimeout = 0
	assert.Equal(t, megaverse.DefaultHTTPTimeout, cfg.Timeout())

	cfg.HTTPTimeout = 5 * time.Second
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}
