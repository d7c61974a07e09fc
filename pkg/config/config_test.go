package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "node", cfg.NodeBinary)
	assert.Equal(t, 4000, cfg.ServerPort)
	assert.Equal(t, "server/app.js", cfg.ServerEntry)
	assert.Equal(t, "http://localhost:4000", cfg.ServerURL())
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serverPort: 4100\nlogLevel: debug\nwindowTitle: from-file\n"), 0644))

	t.Setenv("GUIJS_SERVER_PORT", "4200")
	t.Setenv("GUIJS_NODE_BINARY", "/opt/node/bin/node")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// environment beats file, file beats defaults
	assert.Equal(t, 4200, cfg.ServerPort)
	assert.Equal(t, "/opt/node/bin/node", cfg.NodeBinary)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.WindowTitle)
	assert.Equal(t, "server/app.js", cfg.ServerEntry)
}

func TestLoadConfigRejectsUnknownFileKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serverPrt: 1\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("GUIJS_SERVER_PORT", "not-a-port")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty binary", func(c *Config) { c.NodeBinary = "" }},
		{"empty entry", func(c *Config) { c.ServerEntry = "" }},
		{"zero port", func(c *Config) { c.ServerPort = 0 }},
		{"port too high", func(c *Config) { c.ServerPort = 70000 }},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
		{"bad window", func(c *Config) { c.WindowWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
