package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"TADA_STORE", "TADA_PATH", "TADA_THEME", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT"} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Store.Kind)
	assert.Equal(t, filepath.Join(home, ".tada"), cfg.Store.Path)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	home := isolate(t)
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
store:
  kind: sqlite
theme: neon
log:
  level: debug
  output: file:~/.tada/tada.log
`), 0o600))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Kind)
	assert.Equal(t, filepath.Join(home, ".tada", "tada.db"), cfg.Store.Path)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "file:"+filepath.Join(home, ".tada", "tada.log"), cfg.Log.Output)

	t.Setenv("TADA_STORE", "memory")
	t.Setenv("TADA_THEME", "mono")
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Kind)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoad_BadYAML(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("store: [unterminated"), 0o600))
	_, err := Load(p)
	assert.ErrorContains(t, err, "parse")
}

func TestResolve_ExpandsTilde(t *testing.T) {
	home := isolate(t)
	cfg := Default()
	cfg.Store.Path = "~/todos"
	require.NoError(t, cfg.resolve())
	assert.Equal(t, filepath.Join(home, "todos"), cfg.Store.Path)
}

func TestResolve_MemoryHasNoPath(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Store.Kind = "Memory"
	require.NoError(t, cfg.resolve())
	assert.Equal(t, "memory", cfg.Store.Kind)
	assert.Empty(t, cfg.Store.Path)
}

func TestOverride_SwitchesDefaultLocation(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	require.NoError(t, cfg.Override("sqlite", "", "", "debug"))
	assert.Equal(t, filepath.Join(home, ".tada", "tada.db"), cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)

	require.NoError(t, cfg.Override("", "/tmp/elsewhere.db", "mono", ""))
	assert.Equal(t, "/tmp/elsewhere.db", cfg.Store.Path)
	assert.Equal(t, "mono", cfg.Theme)

	require.NoError(t, cfg.Override("json", "", "", ""))
	assert.Equal(t, "/tmp/elsewhere.db", cfg.Store.Path, "an explicit path survives a kind switch")
}
