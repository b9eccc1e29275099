package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blocks-cli/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
}

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, testConfig("https://blog.example.com").Save(path))

	var out bytes.Buffer
	require.NoError(t, runClear(path, true, &out))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "✓ Configuration cleared from "+path+"\n", out.String())
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	var out bytes.Buffer
	require.NoError(t, runClear(path, true, &out))
	assert.Equal(t, "✓ No config file to remove\n", out.String())

	// Idempotent
	require.NoError(t, runClear(path, true, &bytes.Buffer{}))
}

func TestRunClear_ReportsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WP_USERNAME", "editor")
	t.Setenv("BLK_URL", "https://blog.example.com")

	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "Environment variables will still be used: BLK_URL, WP_USERNAME")
}
