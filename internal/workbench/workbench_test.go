package workbench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkctx/wkctx/internal/catalog"
	"github.com/wkctx/wkctx/internal/ctxctl"
	"github.com/wkctx/wkctx/internal/dbops"
)

// newWorkbench builds a workbench over a temp-dir engine and in-memory
// catalogs, bypassing config loading.
func newWorkbench(t *testing.T) *Workbench {
	t.Helper()

	engine, err := dbops.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	lessonsCat := catalog.Static(
		catalog.Definition{
			Name:   "notebook",
			Schema: "define\nnote sub entity;",
			Seed:   "insert $n isa note;",
		},
	)
	demosCat := catalog.Static(
		catalog.Definition{Name: "sandbox", Schema: "define\nthing sub entity;"},
	)

	w := &Workbench{
		Engine:     engine,
		lessons:    ctxctl.New(lessonsCat, engine),
		demos:      ctxctl.New(demosCat, engine),
		lessonsCat: lessonsCat,
		demosCat:   demosCat,
	}
	w.restoreActive()
	return w
}

func TestControllerSelection(t *testing.T) {
	w := newWorkbench(t)

	assert.NotSame(t, w.Controller(false), w.Controller(true))
	_, ok := w.Catalog(false).Get("notebook")
	assert.True(t, ok)
	_, ok = w.Catalog(true).Get("notebook")
	assert.False(t, ok)
}

func TestDriftReport(t *testing.T) {
	w := newWorkbench(t)
	ctx := context.Background()

	t.Run("no context loaded", func(t *testing.T) {
		_, err := w.DriftReport(ctx, false, "")
		assert.ErrorIs(t, err, ctxctl.ErrNoContextLoaded)
	})

	t.Run("unknown context", func(t *testing.T) {
		_, err := w.DriftReport(ctx, false, "missing")
		assert.ErrorIs(t, err, ctxctl.ErrNotFound)
	})

	t.Run("never built", func(t *testing.T) {
		_, err := w.DriftReport(ctx, true, "sandbox")
		assert.ErrorIs(t, err, dbops.ErrUnknownDatabase)
	})

	t.Run("fresh load is in sync", func(t *testing.T) {
		require.NoError(t, w.Controller(false).Load(ctx, "notebook"))

		r, err := w.DriftReport(ctx, false, "")
		require.NoError(t, err)
		assert.True(t, r.InSync())
		assert.Equal(t, "wkctx_notebook", r.Applied)
		assert.Equal(t, "catalog:notebook", r.Catalog)
	})

	t.Run("catalog edit shows drift", func(t *testing.T) {
		w.lessonsCat = catalog.Static(
			catalog.Definition{
				Name:   "notebook",
				Schema: "define\nnote sub entity, owns title;",
				Seed:   "insert $n isa note;",
			},
		)

		r, err := w.DriftReport(ctx, false, "notebook")
		require.NoError(t, err)
		assert.False(t, r.InSync())
		assert.Contains(t, r.Diff, "owns title")
	})
}

func TestRestoreActive(t *testing.T) {
	dir := t.TempDir()

	engine, err := dbops.Open(dir)
	require.NoError(t, err)

	lessonsCat := catalog.Static(
		catalog.Definition{Name: "notebook", Schema: "define\nnote sub entity;"},
	)

	w := &Workbench{
		Engine:     engine,
		lessons:    ctxctl.New(lessonsCat, engine),
		demos:      ctxctl.New(catalog.Static(), engine),
		lessonsCat: lessonsCat,
		demosCat:   catalog.Static(),
	}
	require.NoError(t, w.lessons.Load(context.Background(), "notebook"))
	require.NoError(t, w.Close())

	// A new workbench over the same directory adopts the persisted
	// active designation.
	engine2, err := dbops.Open(dir)
	require.NoError(t, err)
	defer engine2.Close()

	w2 := &Workbench{
		Engine:     engine2,
		lessons:    ctxctl.New(lessonsCat, engine2),
		demos:      ctxctl.New(catalog.Static(), engine2),
		lessonsCat: lessonsCat,
		demosCat:   catalog.Static(),
	}
	w2.restoreActive()

	assert.Equal(t, "notebook", w2.Controller(false).Current())
	assert.True(t, w2.Controller(false).Status().IsReady)

	// An unmanaged or unknown designation is ignored.
	engine2.SetActiveDatabase("something_else")
	w3 := &Workbench{
		Engine:     engine2,
		lessons:    ctxctl.New(lessonsCat, engine2),
		demos:      ctxctl.New(catalog.Static(), engine2),
		lessonsCat: lessonsCat,
		demosCat:   catalog.Static(),
	}
	w3.restoreActive()
	assert.Empty(t, w3.Controller(false).Current())
}
