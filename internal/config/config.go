package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds persistent CLI configuration loaded from ~/.lpop/config.yaml.
type Config struct {
	// DefaultEnv is the environment assumed when --env is not given.
	DefaultEnv string `yaml:"default_env"`

	// TeamID and AccessGroup configure Keychain access-group sharing.
	TeamID      string `yaml:"team_id"`
	AccessGroup string `yaml:"access_group"`

	// Synchronizable opts stored secrets into OS-level keychain sync.
	Synchronizable bool `yaml:"synchronizable"`
}

// DefaultPath returns the default config file path: ~/.lpop/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lpop", "config.yaml")
}

// Load reads a YAML config file from path. If the file does not exist,
// it returns an empty Config and no error. An empty or all-comment file
// also returns an empty Config with no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment returns the configured default environment, falling back to
// "development".
func (c *Config) Environment() string {
	if c.DefaultEnv != "" {
		return c.DefaultEnv
	}
	return "development"
}
