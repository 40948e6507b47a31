package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.URL = "https://interviews.example.com"
	cfg.UI.Streaming = false
	cfg.Roles = []RoleConfig{{ID: "sre", Title: "Site Reliability Engineer"}}

	require.NoError(t, WriteConfig(tmpDir, cfg))

	loaded, err := ReadConfig(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "https://interviews.example.com", loaded.Server.URL)
	assert.False(t, loaded.UI.Streaming)
	require.Len(t, loaded.Roles, 1)
	assert.Equal(t, "sre", loaded.Roles[0].ID)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.True(t, cfg.UI.Streaming)
	assert.True(t, cfg.UI.Markdown)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestRequestTimeoutFallsBackWhenUnset(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestReadConfigMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("server: [broken"), 0644))

	_, err := ReadConfig(tmpDir)
	assert.Error(t, err)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	assert.Error(t, err)
}
