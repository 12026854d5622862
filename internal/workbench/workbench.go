// Package workbench wires the engine, catalogs, and controllers into one
// bundle shared by the CLI commands and the MCP server, so both surfaces
// drive the exact same controller instances and behave identically.
package workbench

import (
	"context"
	"fmt"

	"github.com/wkctx/wkctx/internal/catalog"
	"github.com/wkctx/wkctx/internal/config"
	"github.com/wkctx/wkctx/internal/ctxctl"
	"github.com/wkctx/wkctx/internal/dbops"
	"github.com/wkctx/wkctx/internal/drift"
	"github.com/wkctx/wkctx/internal/naming"
)

// Options configures Open.
type Options struct {
	// DataDir overrides the configured data directory when non-empty.
	DataDir string
	// ControllerOptions are applied to both controllers (seed-skip
	// handlers, progress hooks).
	ControllerOptions []ctxctl.Option
}

// Workbench bundles the open engine and the two controller instantiations:
// one over the lesson catalog, one over the demo catalog. The two
// controllers share state-machine semantics and differ only in the catalog
// they draw from.
type Workbench struct {
	Config *config.Config
	Engine *dbops.SQLite

	lessons    *ctxctl.Controller
	demos      *ctxctl.Controller
	lessonsCat catalog.Catalog
	demosCat   catalog.Catalog
}

// Open loads configuration, opens the engine, and builds both controllers.
// The caller should call Close when done.
func Open(opts Options) (*Workbench, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = cfg.ResolvedDataDir()
	}

	engine, err := dbops.Open(dataDir)
	if err != nil {
		return nil, err
	}
	engine.SetMaxStatement(cfg.MaxSeedStatement())

	var lessonsCat catalog.Catalog
	if cfg.CatalogDir != "" {
		lessonsCat, err = catalog.FromDir(cfg.CatalogDir)
	} else {
		lessonsCat, err = catalog.Embedded(catalog.Lessons)
	}
	if err != nil {
		engine.Close()
		return nil, err
	}

	demosCat, err := catalog.Embedded(catalog.Demos)
	if err != nil {
		engine.Close()
		return nil, err
	}

	w := &Workbench{
		Config:     cfg,
		Engine:     engine,
		lessons:    ctxctl.New(lessonsCat, engine, opts.ControllerOptions...),
		demos:      ctxctl.New(demosCat, engine, opts.ControllerOptions...),
		lessonsCat: lessonsCat,
		demosCat:   demosCat,
	}
	w.restoreActive()
	return w, nil
}

// restoreActive adopts the persisted active-database designation into
// whichever controller's catalog defines it, so a new process resumes
// where the previous one left off.
func (w *Workbench) restoreActive() {
	physical := w.Engine.ActiveDatabase()
	if !naming.IsManaged(physical) {
		return
	}
	name, _ := naming.LogicalName(physical)
	if _, ok := w.lessonsCat.Get(name); ok {
		w.lessons.Adopt(name)
		return
	}
	if _, ok := w.demosCat.Get(name); ok {
		w.demos.Adopt(name)
	}
}

// Close releases the engine.
func (w *Workbench) Close() error {
	return w.Engine.Close()
}

// Controller returns the demo controller when demo is set, otherwise the
// lesson controller.
func (w *Workbench) Controller(demo bool) *ctxctl.Controller {
	if demo {
		return w.demos
	}
	return w.lessons
}

// Catalog returns the catalog backing the selected controller.
func (w *Workbench) Catalog(demo bool) catalog.Catalog {
	if demo {
		return w.demosCat
	}
	return w.lessonsCat
}

// DriftReport compares the schema recorded in a context's physical database
// with the schema its catalog currently defines. An empty name means the
// selected controller's current context.
func (w *Workbench) DriftReport(ctx context.Context, demo bool, name string) (drift.Result, error) {
	if name == "" {
		name = w.Controller(demo).Current()
	}
	if name == "" {
		return drift.Result{}, ctxctl.ErrNoContextLoaded
	}

	def, ok := w.Catalog(demo).Get(name)
	if !ok {
		return drift.Result{}, fmt.Errorf("%w: %q", ctxctl.ErrNotFound, name)
	}

	physical := naming.PhysicalName(name)
	exists, err := w.Engine.DatabaseExists(ctx, physical)
	if err != nil {
		return drift.Result{}, err
	}
	if !exists {
		return drift.Result{}, fmt.Errorf("%w: %s has never been built", dbops.ErrUnknownDatabase, physical)
	}

	applied, err := w.Engine.SchemaText(ctx, physical)
	if err != nil {
		return drift.Result{}, err
	}
	return drift.Compute(applied, ctxctl.CleanSchema(def.Schema), physical, "catalog:"+name), nil
}
