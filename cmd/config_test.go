package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	env := newTestEnv(t)

	t.Run("list shows all keys with defaults", func(t *testing.T) {
		out := env.run("config")
		assert.Contains(t, out, "data_dir:")
		assert.Contains(t, out, "default_context:")
		assert.Contains(t, out, "catalog_dir:")
		assert.Contains(t, out, "limits.max_seed_statement: 1048576")
	})

	t.Run("set and get round-trip", func(t *testing.T) {
		out := env.run("config", "default_context", "bookstore")
		assert.Contains(t, out, "default_context = bookstore (global)")

		out = env.run("config", "default_context")
		assert.Equal(t, "bookstore\n", out)
	})

	t.Run("settings persist across invocations", func(t *testing.T) {
		out := env.run("config", "default_context")
		assert.Equal(t, "bookstore\n", out)
	})

	t.Run("unknown key fails", func(t *testing.T) {
		out, err := env.runErr("config", "no_such_key")
		require.Error(t, err)
		assert.Contains(t, out, "unknown config key")
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		out, err := env.runErr("config", "limits.max_seed_statement", "zero")
		require.Error(t, err)
		assert.Contains(t, out, "positive integer")
	})

	t.Run("local flag writes local config", func(t *testing.T) {
		out := env.run("config", "default_context", "social-network", "--local")
		assert.Contains(t, out, "(local)")

		// Local now shadows global.
		out = env.run("config", "default_context")
		assert.Equal(t, "social-network\n", out)
	})
}

func TestInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("status", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, out, "invalid output format")
}
