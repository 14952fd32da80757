// Package config loads the capsule server configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the YAML server configuration. Zero values fall back to the
// defaults from Default.
type Config struct {
	// Workspace is the directory the file capabilities operate in.
	Workspace string `yaml:"workspace"`

	Weather WeatherConfig `yaml:"weather"`
	Quote   QuoteConfig   `yaml:"quote"`

	// DisabledCapabilities lists capability names the bootstrap must not
	// register.
	DisabledCapabilities []string `yaml:"disabledCapabilities"`
}

// WeatherConfig configures the weather lookup capability.
type WeatherConfig struct {
	Endpoint string `yaml:"endpoint"`

	// APIKey may be a literal key or an op:// secret reference.
	APIKey string `yaml:"apiKey"`

	Units string `yaml:"units"`
}

// QuoteConfig configures the quote lookup capability.
type QuoteConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Workspace: "./workspace",
		Weather: WeatherConfig{
			Endpoint: "https://api.openweathermap.org/data/2.5/weather",
			Units:    "metric",
		},
		Quote: QuoteConfig{
			Endpoint: "https://api.quotable.io/random",
		},
	}
}

// Load reads YAML configuration on top of the defaults.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads configuration from path. An empty path or a missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// IsDisabled reports whether the named capability must not be registered.
func (c *Config) IsDisabled(name string) bool {
	return slices.Contains(c.DisabledCapabilities, name)
}
