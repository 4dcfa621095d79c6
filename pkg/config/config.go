/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/dtaus/pkg/codec"
	"gopkg.in/yaml.v3"
)

// Config represents the dtaus tool configuration
type Config struct {
	// Tolerance is the sum of the tolerance flags, 0 for strict parsing.
	Tolerance int     `yaml:"tolerance"`
	Encoding  string  `yaml:"encoding"`
	Verify    bool    `yaml:"verify"`
	Logging   Logging `yaml:"logging"`
	Metrics   Metrics `yaml:"metrics"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
	// Mode is "development" for console output or "production" for JSON.
	Mode string `yaml:"mode"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	// Textfile, when set, receives the Prometheus text exposition after each run.
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Tolerance: int(codec.StrictConformant),
		Encoding:  codec.CharsetName(codec.DefaultCharset),
		Logging: Logging{
			Level: "info",
			Mode:  "production",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the tolerance, encoding and logging settings are usable.
func (c *Config) Validate() error {
	if _, err := codec.ToleranceFromInt(c.Tolerance); err != nil {
		return err
	}
	if _, err := codec.LookupCharset(c.Encoding); err != nil {
		return err
	}
	switch c.Logging.Mode {
	case "", "development", "production":
	default:
		return fmt.Errorf("unknown logging mode %q", c.Logging.Mode)
	}
	return nil
}

// CodecTolerance returns the configured tolerance flags.
func (c *Config) CodecTolerance() (codec.Tolerance, error) {
	return codec.ToleranceFromInt(c.Tolerance)
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./dtaus.yaml"
	}

	// For Linux/macOS, use ~/.config/dtaus/config.yaml
	configDir := filepath.Join(homeDir, ".config", "dtaus")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
