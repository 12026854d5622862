package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	env := newTestEnv(t)

	t.Run("builds the database", func(t *testing.T) {
		out := env.run("load", "bookstore")
		assert.Contains(t, out, `Context "bookstore" loaded`)

		out = env.run("ls", "--databases")
		assert.Contains(t, out, "* wkctx_bookstore")
	})

	t.Run("status reports seeded statements", func(t *testing.T) {
		out := env.run("status")
		assert.Contains(t, out, "Context:  bookstore")
		assert.Regexp(t, `Seeded:\s+[1-9]\d* statements`, out)
	})

	t.Run("unknown context fails without changing state", func(t *testing.T) {
		out, err := env.runErr("load", "no-such-context")
		require.Error(t, err)
		assert.Contains(t, out, "context not found")

		out = env.run("status")
		assert.Contains(t, out, "Context:  bookstore")
	})

	t.Run("schema-only demo context loads with zero seeds", func(t *testing.T) {
		out := env.run("load", "empty-sandbox", "--demo")
		assert.Contains(t, out, `Context "empty-sandbox" loaded`)

		out = env.run("status", "--demo")
		assert.Contains(t, out, "Seeded:   0 statements")
	})
}

func TestResetAndClear(t *testing.T) {
	env := newTestEnv(t)

	t.Run("reset with no context fails", func(t *testing.T) {
		out, err := env.runErr("reset")
		require.Error(t, err)
		assert.Contains(t, out, "no context loaded")
	})

	t.Run("reset rebuilds the current context", func(t *testing.T) {
		env.run("use", "social-network")
		out := env.run("reset")
		assert.Contains(t, out, `Context "social-network" rebuilt`)

		out = env.run("status")
		assert.Contains(t, out, "State:    ready")
	})

	t.Run("clear deactivates without deleting", func(t *testing.T) {
		out := env.run("clear")
		assert.Contains(t, out, `Context "social-network" deactivated`)

		out = env.run("status")
		assert.Contains(t, out, "No context active")

		// Database still on disk, just not active.
		out = env.run("ls", "--databases")
		assert.Contains(t, out, "wkctx_social_network")
		assert.NotContains(t, out, "* wkctx_social_network")
	})

	t.Run("clear when nothing active is a no-op", func(t *testing.T) {
		out := env.run("clear")
		assert.Contains(t, out, "No context was active")
	})

	t.Run("use after clear reactivates instantly", func(t *testing.T) {
		out := env.run("use", "social-network")
		assert.Contains(t, out, `Now using context "social-network"`)
	})
}

func TestRmDB(t *testing.T) {
	env := newTestEnv(t)

	env.run("use", "social-network")
	out := env.run("rm-db", "social-network")
	assert.Contains(t, out, "Deleted database wkctx_social_network")

	out = env.run("status")
	assert.Contains(t, out, "No context active")

	out = env.run("ls", "--databases")
	assert.NotContains(t, out, "wkctx_social_network")

	t.Run("unknown database fails", func(t *testing.T) {
		out, err := env.runErr("rm-db", "social-network")
		require.Error(t, err)
		assert.Contains(t, out, "unknown database")
	})
}
