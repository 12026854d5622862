package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUse(t *testing.T) {
	env := newTestEnv(t)

	t.Run("builds and activates on first use", func(t *testing.T) {
		out := env.run("use", "social-network")
		assert.Contains(t, out, `Now using context "social-network"`)

		out = env.run("status")
		assert.Contains(t, out, "Context:  social-network")
		assert.Contains(t, out, "Database: wkctx_social_network")
		assert.Contains(t, out, "State:    ready")
	})

	t.Run("active context survives across invocations", func(t *testing.T) {
		out := env.run("ls", "--databases")
		assert.Contains(t, out, "* wkctx_social_network")
	})

	t.Run("switching back reuses the database", func(t *testing.T) {
		env.run("use", "bookstore")
		env.run("use", "social-network")

		// Both databases exist; only one is active.
		out := env.run("ls", "--databases")
		assert.Contains(t, out, "wkctx_bookstore")
		assert.Contains(t, out, "* wkctx_social_network")
	})

	t.Run("unknown context fails", func(t *testing.T) {
		out, err := env.runErr("use", "no-such-context")
		require.Error(t, err)
		assert.Contains(t, out, "context not found")
	})

	t.Run("no name and no default fails", func(t *testing.T) {
		out, err := env.runErr("use")
		require.Error(t, err)
		assert.Contains(t, out, "default_context")
	})

	t.Run("default context from config", func(t *testing.T) {
		env.run("config", "default_context", "bookstore")
		out := env.run("use")
		assert.Contains(t, out, `Now using context "bookstore"`)
	})

	t.Run("demo catalog selected by flag", func(t *testing.T) {
		out := env.run("use", "flight-routes", "--demo")
		assert.Contains(t, out, `Now using context "flight-routes"`)

		// A never-built demo context is invisible to the lesson catalog.
		out, err := env.runErr("use", "empty-sandbox")
		require.Error(t, err)
		assert.Contains(t, out, "context not found")
	})
}

func TestUseJSON(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("use", "social-network", "-o", "json")

	var st struct {
		Name      string `json:"name"`
		IsReady   bool   `json:"is_ready"`
		IsLoading bool   `json:"is_loading"`
		Error     string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "social-network", st.Name)
	assert.True(t, st.IsReady)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
}
