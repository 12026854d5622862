package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadScope_MissingFileGivesDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.DefaultContext)
	assert.Equal(t, DefaultMaxSeedStatement, cfg.MaxSeedStatement())
}

func TestSaveAndReload_Local(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("default_context", "bookstore"))
	require.NoError(t, cfg.Set("limits.max_seed_statement", "4096"))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, "bookstore", reloaded.DefaultContext)
	assert.Equal(t, 4096, reloaded.MaxSeedStatement())
	assert.Equal(t, ScopeLocal, reloaded.Scope())
}

func TestLoad_PrefersLocal(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".wkctx"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".wkctx", "config.yaml"),
		[]byte("default_context: local-one\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local-one", cfg.DefaultContext)
	assert.Equal(t, ScopeLocal, cfg.Scope())
}

func TestValidate_Bounds(t *testing.T) {
	bad := 0
	cfg := &Config{Limits: Limits{MaxSeedStatement: &bad}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidValue)
}

func TestKeys(t *testing.T) {
	cfg := &Config{}

	assert.True(t, IsValidKey("data_dir"))
	assert.False(t, IsValidKey("bogus"))

	_, err := cfg.Get("bogus")
	assert.ErrorIs(t, err, ErrUnknownKey)

	err = cfg.Set("limits.max_seed_statement", "not-a-number")
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, cfg.Set("catalog_dir", "/tmp/catalog"))
	v, err := cfg.Get("catalog_dir")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog", v)
}

func TestResolvedDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/srv/wkctx"}
	assert.Equal(t, "/srv/wkctx", cfg.ResolvedDataDir())

	cfg = &Config{}
	assert.Contains(t, cfg.ResolvedDataDir(), ".wkctx")
}
