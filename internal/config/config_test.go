package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: Config{
				URL:         "https://blog.example.com",
				Username:    "editor",
				AppPassword: "abcd efgh",
			},
			wantErr: false,
		},
		{
			name: "missing URL",
			config: Config{
				Username:    "editor",
				AppPassword: "abcd efgh",
			},
			wantErr: true,
			errMsg:  "url is required",
		},
		{
			name: "missing username",
			config: Config{
				URL:         "https://blog.example.com",
				AppPassword: "abcd efgh",
			},
			wantErr: true,
			errMsg:  "username is required",
		},
		{
			name: "missing app password",
			config: Config{
				URL:      "https://blog.example.com",
				Username: "editor",
			},
			wantErr: true,
			errMsg:  "app_password is required",
		},
		{
			name: "plain http",
			config: Config{
				URL:         "http://blog.example.com",
				Username:    "editor",
				AppPassword: "abcd efgh",
			},
			wantErr: true,
			errMsg:  "url must use https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_NormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		inputURL string
		expected string
	}{
		{"site root", "https://blog.example.com", "https://blog.example.com"},
		{"trailing slash", "https://blog.example.com/", "https://blog.example.com"},
		{"wp-json suffix", "https://blog.example.com/wp-json", "https://blog.example.com"},
		{"wp-json with slash", "https://blog.example.com/wp-json/", "https://blog.example.com"},
		{"subdirectory install", "https://example.com/blog/", "https://example.com/blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{URL: tt.inputURL}
			cfg.NormalizeURL()
			assert.Equal(t, tt.expected, cfg.URL)
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	for _, v := range EnvVars {
		t.Setenv(v, "")
	}

	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("BLK_URL", "https://env.example.com")
		t.Setenv("BLK_USERNAME", "env-user")
		t.Setenv("BLK_APP_PASSWORD", "env-pass")
		t.Setenv("BLK_POST_TYPE", "pages")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://env.example.com", cfg.URL)
		assert.Equal(t, "env-user", cfg.Username)
		assert.Equal(t, "env-pass", cfg.AppPassword)
		assert.Equal(t, "pages", cfg.PostType)
	})

	t.Run("empty env vars do not override", func(t *testing.T) {
		t.Setenv("BLK_URL", "https://override.example.com")

		cfg := &Config{
			URL:      "https://original.example.com",
			Username: "original",
		}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://override.example.com", cfg.URL)
		assert.Equal(t, "original", cfg.Username)
	})

	t.Run("WP_* used when BLK_* not set", func(t *testing.T) {
		t.Setenv("WP_URL", "https://shared.example.com")
		t.Setenv("WP_USERNAME", "shared")
		t.Setenv("WP_APP_PASSWORD", "shared-pass")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://shared.example.com", cfg.URL)
		assert.Equal(t, "shared", cfg.Username)
		assert.Equal(t, "shared-pass", cfg.AppPassword)
	})

	t.Run("BLK_* takes precedence over WP_*", func(t *testing.T) {
		t.Setenv("BLK_USERNAME", "blk-user")
		t.Setenv("WP_USERNAME", "shared")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "blk-user", cfg.Username)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "blk", "config.yml"), DefaultConfigPath())
	})

	t.Run("home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		path := DefaultConfigPath()
		assert.True(t, strings.HasPrefix(path, home))
		assert.Contains(t, path, "blk")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := Config{
		URL:          "https://blog.example.com",
		Username:     "editor",
		AppPassword:  "abcd efgh ijkl",
		OutputFormat: "json",
		PostType:     "pages",
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("url: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	for _, v := range EnvVars {
		t.Setenv(v, "")
	}
	t.Setenv("WP_URL", "https://env.example.com")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.URL)
}

func TestGetEnvWithFallback(t *testing.T) {
	t.Run("returns primary when set", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "primary-value")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "primary-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns fallback when primary empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "fallback-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns empty when both empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "")
		assert.Equal(t, "", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})
}
