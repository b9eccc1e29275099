// Package config provides configuration management for blk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"gopkg.in/yaml.v3"
)

// Config holds the blk configuration.
type Config struct {
	URL          string `yaml:"url"`
	Username     string `yaml:"username"`
	AppPassword  string `yaml:"app_password"`
	OutputFormat string `yaml:"output_format,omitempty"`
	PostType     string `yaml:"post_type,omitempty"`
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.AppPassword == "" {
		return errors.New("app_password is required")
	}

	// Application passwords are only accepted over TLS.
	if !strings.HasPrefix(c.URL, "https://") {
		return errors.New("url must use https")
	}

	return nil
}

// NormalizeURL reduces the URL to the site root: no trailing slash and no
// /wp-json suffix.
func (c *Config) NormalizeURL() {
	c.URL = strings.TrimSuffix(c.URL, "/")
	c.URL = strings.TrimSuffix(c.URL, "/wp-json")
	c.URL = strings.TrimSuffix(c.URL, "/")
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: BLK_* → WP_* → existing config value
func (c *Config) LoadFromEnv() {
	if url := getEnvWithFallback("BLK_URL", "WP_URL"); url != "" {
		c.URL = url
	}
	if username := getEnvWithFallback("BLK_USERNAME", "WP_USERNAME"); username != "" {
		c.Username = username
	}
	if password := getEnvWithFallback("BLK_APP_PASSWORD", "WP_APP_PASSWORD"); password != "" {
		c.AppPassword = password
	}
	if postType := os.Getenv("BLK_POST_TYPE"); postType != "" {
		c.PostType = postType
	}
}

// EnvVars lists every environment variable LoadFromEnv reads.
var EnvVars = []string{
	"BLK_URL", "BLK_USERNAME", "BLK_APP_PASSWORD", "BLK_POST_TYPE",
	"WP_URL", "WP_USERNAME", "WP_APP_PASSWORD",
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "blk", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".blk", "config.yml")
	}

	return filepath.Join(home, ".config", "blk", "config.yml")
}

// Save atomically writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// User read/write only; the file holds an application password.
	if err := renameio.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
