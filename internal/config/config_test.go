package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_AI_API_KEY", "API_KEY",
		"GEMINI_MODEL", "DEBUG", "MARKETSPY_DEBUG", "LOG_LEVEL", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marketspy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(writeConfig(t, "app:\n  debug: false\n"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Gemini.Model)
	assert.Equal(t, 120*time.Second, cfg.AI.Gemini.TimeoutDuration())
	assert.Equal(t, 10, cfg.AI.Gemini.RequestsPerMinute)
	assert.Equal(t, 5, cfg.Research.MaxProducts)
	assert.True(t, cfg.Research.ValidateSchema)
	assert.Equal(t, "dashboard", cfg.Output.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.AI.Gemini.APIKey)
	assert.NotEmpty(t, cfg.App.ConfigFile)
}

func TestLoad_EnvironmentAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_AI_API_KEY", "alias-key")
	t.Setenv("PORT", "9090")
	t.Setenv("MARKETSPY_DEBUG", "true")
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(writeConfig(t, "logging:\n  level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, "alias-key", cfg.AI.Gemini.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "debug", cfg.Logging.Level, "debug mode forces debug logging")
}

func TestLoad_FileOverrides(t *testing.T) {
	clearEnv(t)
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(writeConfig(t, `
ai:
  gemini:
    api_key: file-key
    model: gemini-2.5-pro
    timeout: 45s
research:
  max_products: 3
output:
  format: csv
  directory: out
`))
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.AI.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Gemini.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.Gemini.TimeoutDuration())
	assert.Equal(t, 3, cfg.Research.MaxProducts)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "out", cfg.Output.Directory)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	Reset()
	t.Cleanup(Reset)

	_, err := Load(writeConfig(t, `
output:
  format: pptx
logging:
  format: xml
research:
  max_products: -1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration errors")
	assert.Contains(t, err.Error(), "Unknown output format: pptx")
	assert.Contains(t, err.Error(), "Unknown logging format: xml")
	assert.Contains(t, err.Error(), "max_products")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	Reset()
	t.Cleanup(Reset)

	_, err := Load(writeConfig(t, "ai:\n  gemini:\n    timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration for ai.gemini.timeout")
}

func TestIsValidAPIKey(t *testing.T) {
	assert.False(t, isValidAPIKey(""))
	assert.False(t, isValidAPIKey("YOUR_API_KEY"))
	assert.True(t, isValidAPIKey("AIza-real-looking"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "reports"), expandPath("~/reports"))
	t.Setenv("MARKETSPY_TEST_DIR", "/tmp/x")
	assert.Equal(t, "/tmp/x/r", expandPath("$MARKETSPY_TEST_DIR/r"))
}
