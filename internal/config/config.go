// Package config loads the optional YAML defaults file for ec2-zcssh.
// Every value can be overridden by a command-line flag.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ZoidBB/ec2-zcssh/internal/session"
)

// Config holds per-user defaults.
type Config struct {
	Program string `yaml:"program"` // session binary, default csshX
	Login   string `yaml:"login"`   // default ssh login override
	Region  string `yaml:"region"`  // default AWS region
	Public  bool   `yaml:"public"`  // prefer public addresses by default
}

// Load reads and parses a YAML defaults file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadDefault loads the defaults file from its standard location, falling
// back to built-in defaults when none exists.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}
	return Load(path)
}

// DefaultPath returns the standard defaults-file location,
// ~/.config/ec2-zcssh/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ec2-zcssh", "config.yaml"), nil
}

func applyDefaults(cfg *Config) {
	if cfg.Program == "" {
		cfg.Program = session.DefaultProgram
	}
}
