package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/toolgate/internal/domain"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationModePrompt, cfg.Confirmation.Mode)
	assert.False(t, cfg.Execution.AllowShell)
	assert.Equal(t, domain.TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "~/.toolgate/rules.yaml", cfg.Security.RulesFile)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("execution:\n  allow_shell: true\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.Execution.AllowShell)
	assert.Equal(t, domain.ShellAuto, cfg.Execution.Shell)
	assert.Equal(t, domain.ConfirmationModePrompt, cfg.Confirmation.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestPathPrecedence(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(EnvConfigPath, envPath)

	assert.Equal(t, envPath, NewFileLoader("").Path())
	assert.Equal(t, "/explicit/config.yaml", NewFileLoader("/explicit/config.yaml").Path())

	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, filepath.Join(".toolgate", "config.yaml"), lastTwo(NewFileLoader("").Path()))
}

func TestSaveRoundTrip(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := Defaults()
	require.NoError(t, err)
	cfg.Confirmation.Mode = domain.ConfirmationModeDeny
	cfg.Server.Port = 9191

	require.NoError(t, loader.Save(cfg))
	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func lastTwo(path string) string {
	return filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))
}
