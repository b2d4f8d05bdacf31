package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTablePrefix(t *testing.T) {
	tests := []struct {
		env      string
		override string
		want     string
	}{
		{"dev", "", "dev_"},
		{"test", "", "test_"},
		{"prod", "", "prod_"},
		{"unknown", "", "dev_"},
		{"prod", "custom_", "custom_"},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.override, func(t *testing.T) {
			t.Setenv("TABLE_PREFIX", tt.override)
			assert.Equal(t, tt.want, getTablePrefix(tt.env))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.False(t, cfg.AutoMigrate, "schema is never auto-created in prod by default")
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_RATE_LIMIT", "0.5")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 0.5, cfg.AuthRateLimit)
	assert.True(t, cfg.AIEnabled())
}

func TestLoadPromptsDefault(t *testing.T) {
	p, err := LoadPrompts("")
	require.NoError(t, err)

	assert.Equal(t, 100, p.Relation.MaxTokens)
	assert.InDelta(t, 0.3, p.Relation.Temperature, 1e-6)
	assert.Equal(t, 1000, p.Ask.MaxTokens)

	out, err := Render(p.Ask.System, map[string]string{"Context": "## Title\nbody"})
	require.NoError(t, err)
	assert.Contains(t, out, "## Title\nbody")
}

func TestLoadPromptsRejectsBrokenTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relation:\n  user: \"{{.First\"\nask:\n  system: ok\n"), 0o600))

	_, err := LoadPrompts(path)
	assert.Error(t, err)

	_, err = LoadPrompts(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"server-2024-01-01T00-00-00.log",
		"server-2024-01-02T00-00-00.log",
		"server-2024-01-03T00-00-00.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.NotContains(t, files, filepath.Join(dir, "server-2024-01-01T00-00-00.log"))
}
