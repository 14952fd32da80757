package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./workspace", cfg.Workspace)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.Weather.Endpoint)
	assert.Equal(t, "metric", cfg.Weather.Units)
	assert.Empty(t, cfg.Weather.APIKey)
	assert.Equal(t, "https://api.quotable.io/random", cfg.Quote.Endpoint)
	assert.Empty(t, cfg.DisabledCapabilities)
}

func TestLoad(t *testing.T) {
	yamlConfig := `
workspace: /srv/capsule
weather:
  apiKey: op://vault/openweathermap/key
  units: imperial
disabledCapabilities:
  - delete_file
  - get_random_quote
`
	cfg, err := Load(strings.NewReader(yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "/srv/capsule", cfg.Workspace)
	assert.Equal(t, "op://vault/openweathermap/key", cfg.Weather.APIKey)
	assert.Equal(t, "imperial", cfg.Weather.Units)
	// Unset fields keep their defaults.
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.Weather.Endpoint)
	assert.Equal(t, "https://api.quotable.io/random", cfg.Quote.Endpoint)

	assert.True(t, cfg.IsDisabled("delete_file"))
	assert.True(t, cfg.IsDisabled("get_random_quote"))
	assert.False(t, cfg.IsDisabled("create_file"))
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(strings.NewReader("workspace: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capsule.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: /tmp/files\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/files", cfg.Workspace)
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
