package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"db_path": "app.db", "port": 8080}`))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, "rules", cfg.Assistant.Provider)
	require.Equal(t, 30, cfg.Assistant.TimeoutSeconds)
	require.Equal(t, "builtin", cfg.Citation.Source)
	require.Equal(t, 5, cfg.Citation.SuggestLimit)
	require.Equal(t, "local", cfg.Corpus.Provider)
	require.Equal(t, 6, cfg.Corpus.MinRunWords)
	require.Equal(t, "local", cfg.FileStore.Type)
	require.Equal(t, "0 3 * * *", cfg.Jobs.SessionCleanupCron)
	require.Equal(t, 30, cfg.Jobs.SessionRetentionDays)
}

func TestLoadRequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": 8080}`))
	require.Error(t, err)
	_, err = Load(writeConfig(t, `{"db_path": "app.db"}`))
	require.Error(t, err)
	_, err = Load(writeConfig(t, `not json`))
	require.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"db_path": "app.db",
		"port": 9000,
		"assistant": {"provider": "gemini", "timeout_seconds": 10, "data": {"api_key": "k"}},
		"citation": {"suggest_limit": 3},
		"cors_allowlist": ["https://app.example"]
	}`))
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "gemini", cfg.Assistant.Provider)
	require.Equal(t, 10, cfg.Assistant.TimeoutSeconds)
	require.Equal(t, 3, cfg.Citation.SuggestLimit)
	require.Equal(t, []string{"https://app.example"}, cfg.CORSAllowlist)
}
