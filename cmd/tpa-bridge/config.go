package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const DefaultListen = "127.0.0.1:8723"

var ErrUnsupportedConfigFormat = errors.New("config file must be .yaml, .yml or .toml")

// InitializeConfig initializes the bridge at startup, as if the framework had
// called initialize with these arguments.
type InitializeConfig struct {
	URL           string                 `yaml:"url" toml:"url"`
	ProjectUUID   string                 `yaml:"projectUuid" toml:"projectUuid"`
	Configuration map[string]interface{} `yaml:"configuration" toml:"configuration"`
}

type Config struct {
	Listen     string            `yaml:"listen" toml:"listen"`
	Debug      bool              `yaml:"debug" toml:"debug"`
	Initialize *InitializeConfig `yaml:"initialize" toml:"initialize"`
}

func (c *Config) CheckDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}

// LoadConfig reads a host config file. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		cfg.CheckDefaults()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFormat, path)
	}

	cfg.CheckDefaults()
	return cfg, nil
}
