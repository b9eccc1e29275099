package configcmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blocks-cli/internal/config"
)

func testConfig(serverURL string) *config.Config {
	return &config.Config{
		URL:         serverURL,
		Username:    "editor",
		AppPassword: "abcd efgh ijkl",
	}
}

func TestRunTest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/users/me", r.URL.Path)
		w.Write([]byte(`{"id": 3, "name": "Ed Itor", "slug": "editor"}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	require.NoError(t, runTest(testConfig(server.URL), true, &out, nil))
	assert.Contains(t, out.String(), "✓ Authentication successful")
	assert.Contains(t, out.String(), "Authenticated as: Ed Itor (editor)")
}

func TestRunTest_Failures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		errContain string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"code":"incorrect_password","message":"Bad password."}`, "authentication failed"},
		{"forbidden", http.StatusForbidden, "", "access denied"},
		{"server error", http.StatusInternalServerError, "oops", "unexpected status code: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := runTest(testConfig(server.URL), true, &bytes.Buffer{}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestRunTest_ConnectionFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	var out bytes.Buffer
	err := runTest(testConfig(url), true, &out, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection failed")
	assert.Contains(t, out.String(), "✗ Connection failed")
}

func TestLoadValidConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	_, err := loadValidConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 'blk init'")

	require.NoError(t, testConfig("https://blog.example.com").Save(path))
	cfg, err := loadValidConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "editor", cfg.Username)
}
