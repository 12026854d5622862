package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLs(t *testing.T) {
	env := newTestEnv(t)

	t.Run("lists lesson contexts", func(t *testing.T) {
		out := env.run("ls")
		assert.Contains(t, out, "social-network")
		assert.Contains(t, out, "bookstore")
		assert.NotContains(t, out, "flight-routes")
	})

	t.Run("lists demo contexts with flag", func(t *testing.T) {
		out := env.run("ls", "--demo")
		assert.Contains(t, out, "flight-routes")
		assert.Contains(t, out, "empty-sandbox")
		assert.NotContains(t, out, "social-network")
	})

	t.Run("marks the current context", func(t *testing.T) {
		env.run("use", "bookstore")
		out := env.run("ls")
		assert.Contains(t, out, "* bookstore")
	})

	t.Run("no databases before any load", func(t *testing.T) {
		fresh := newTestEnv(t)
		out := fresh.run("ls", "--databases")
		assert.Contains(t, out, "No databases built")
	})

	t.Run("json lists name title current", func(t *testing.T) {
		out := env.run("ls", "-o", "json")

		var items []struct {
			Name    string `json:"name"`
			Title   string `json:"title"`
			Current bool   `json:"current"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "social-network", items[0].Name)
		assert.Equal(t, "People, friendships, and groups", items[0].Title)
		assert.False(t, items[0].Current)
		assert.Equal(t, "bookstore", items[1].Name)
		assert.True(t, items[1].Current)
	})

	t.Run("unmanaged database listed under its raw name", func(t *testing.T) {
		// A database dropped into the data directory by something other
		// than wkctx has no logical name; the listing falls back to the
		// physical name instead of mislabelling it.
		dbDir := filepath.Join(env.dataDir, "databases")
		require.NoError(t, os.MkdirAll(dbDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dbDir, "legacy.db"), nil, 0o644))

		out := env.run("ls", "--databases")
		assert.Contains(t, out, "legacy")

		out = env.run("ls", "--databases", "-o", "json")
		var items []struct {
			Database string `json:"database"`
			Context  string `json:"context"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		for _, it := range items {
			if it.Database == "legacy" {
				assert.Equal(t, "legacy", it.Context)
			}
		}
	})

	t.Run("json databases include logical names", func(t *testing.T) {
		out := env.run("ls", "--databases", "-o", "json")

		var items []struct {
			Database string `json:"database"`
			Context  string `json:"context"`
			Active   bool   `json:"active"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		require.NotEmpty(t, items)
		found := false
		for _, it := range items {
			if it.Database == "wkctx_bookstore" {
				found = true
				assert.Equal(t, "bookstore", it.Context)
				assert.True(t, it.Active)
			}
		}
		assert.True(t, found)
	})
}
