package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30000, cfg.Timeout)
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetRandomUserAgent())
	assert.False(t, cfg.GetForceUserAgent())
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mcp-requests.yaml", `
userAgent: "custom/1.0"
forceUserAgent: true
timeout: 5000
followRedirects: false
validateSSL: false
proxy: "http://proxy:8080"
headers:
  Authorization: "Bearer token"
rateLimit: 2.5
logLevel: debug
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "custom/1.0", cfg.UserAgent)
	assert.True(t, cfg.GetForceUserAgent())
	assert.Equal(t, 5000, cfg.Timeout)
	assert.False(t, cfg.GetFollowRedirects())
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, "http://proxy:8080", cfg.Proxy)
	assert.Equal(t, "Bearer token", cfg.Headers["Authorization"])
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mcp-requests.json", `{
  "randomUserAgent": true,
  "uaBrowser": "firefox",
  "uaOS": "linux",
  "maxRedirects": 3
}`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.True(t, cfg.GetRandomUserAgent())
	assert.Equal(t, "firefox", cfg.UABrowser)
	assert.Equal(t, "linux", cfg.UAOS)
	assert.Equal(t, 3, cfg.MaxRedirects)
	assert.Equal(t, 30000, cfg.Timeout, "unset fields keep defaults")
}

func TestLoadConfig_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `timeout = 5000`)

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "timeout: [not a number\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse config")
}

func TestFindAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".mcp-requests.yaml", "timeout: 1000\n")
	writeFile(t, dir, "mcp-requests.json", `{"timeout": 9000}`)

	cfg, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Timeout, "filenames are probed in order")
}

func TestFindAndLoadConfig_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
