package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/data/mealai.db", cfg.DBPath)
	assert.Equal(t, "/data/photos", cfg.PhotoPath)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "https://api.nal.usda.gov/fdc/v1", cfg.USDABaseURL)
	assert.Equal(t, "https://world.openfoodfacts.org/api/v2", cfg.OFFBaseURL)
	assert.True(t, cfg.FoodSearchEnabled)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("AI_PROVIDER", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-test123")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("FOOD_SEARCH_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "claude", cfg.AIProvider)
	assert.Equal(t, "sk-test123", cfg.ClaudeAPIKey)
	assert.Equal(t, "sk-openai", cfg.OpenAIAPIKey)
	assert.False(t, cfg.FoodSearchEnabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":7000"
usda_api_key: file-key
food_search_enabled: false
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "file-key", cfg.USDAAPIKey)
	assert.False(t, cfg.FoodSearchEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealai.yaml")
	require.NoError(t, os.WriteFile(path, []byte("usda_api_key: file-key\n"), 0600))
	t.Setenv("USDA_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.USDAAPIKey)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
