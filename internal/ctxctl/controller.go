// Package ctxctl implements the context lifecycle controller: a small state
// machine that materializes named workspace contexts (schema + seed data)
// into physical databases and switches between them. For every requested
// switch it decides whether a full rebuild, a cheap database swap, or a
// no-op is correct.
//
// The controller owns a single current-context state. The empty string is
// the no-context-active value throughout: in state, in Status.Name, and in
// observer callbacks.
//
// A controller instance has a single logical owner. Its state is guarded so
// Status and IsLoaded are safe to call while a load is in flight, but whole
// operations are not serialised: issuing two concurrent loads with different
// target names against the same controller is a caller bug. The CLI and MCP
// surfaces issue one operation at a time.
package ctxctl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wkctx/wkctx/internal/catalog"
	"github.com/wkctx/wkctx/internal/dbops"
	"github.com/wkctx/wkctx/internal/log"
	"github.com/wkctx/wkctx/internal/naming"
	"github.com/wkctx/wkctx/internal/splitter"
)

var (
	// ErrNotFound indicates the requested context name is absent from the
	// catalog. The controller state is left untouched.
	ErrNotFound = errors.New("context not found")
	// ErrNoContextLoaded is returned by Reset when nothing is active.
	ErrNoContextLoaded = errors.New("no context loaded")
)

// Status is a snapshot of controller state. IsReady holds exactly when a
// context is current, no load is in flight, and the last operation did not
// fail.
type Status struct {
	Name      string `json:"name,omitempty"`
	IsReady   bool   `json:"is_ready"`
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error,omitempty"`
}

// Controller drives the load/switch/reset/clear protocol against a catalog
// and a database operations collaborator.
type Controller struct {
	cat catalog.Catalog
	ops dbops.Operations

	mu           sync.Mutex
	current      string
	loading      bool
	lastErr      string
	lastLoadedAt int64

	observers []Observer
	sinks     []StateSink

	now        func() time.Time
	onSeedSkip func(name, statement string, err error)
	onProgress func(done, total int)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for lastLoadedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSeedSkipHandler installs a hook invoked for every seed statement the
// load skipped. Skips are also recorded in the audit log regardless.
func WithSeedSkipHandler(fn func(name, statement string, err error)) Option {
	return func(c *Controller) { c.onSeedSkip = fn }
}

// WithProgress installs a hook invoked after each seed statement attempt
// with (attempted, total) counts.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Controller) { c.onProgress = fn }
}

// New returns a controller in the Idle state: no context current, no error.
func New(cat catalog.Catalog, ops dbops.Operations, opts ...Option) *Controller {
	c := &Controller{cat: cat, ops: ops, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Adopt marks name as the current context without touching any database
// and without notifying observers. It restores previously persisted state
// at process startup, where nothing is actually changing.
func (c *Controller) Adopt(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = name
	c.loading = false
	c.lastErr = ""
}

// Load materializes the named context from scratch: create-or-replace the
// physical database, apply schema, apply seed statements, designate the
// database active, and commit the name as current.
//
// Calling Load with the already-current name and no recorded error is an
// idempotent no-op. An unknown name returns ErrNotFound with no state
// change. Individual seed statement failures are logged and skipped; they
// never fail the load. Any other collaborator failure leaves the previous
// current name in place, records the failure message, and is returned to
// the caller.
func (c *Controller) Load(ctx context.Context, name string) error {
	c.mu.Lock()
	if name == c.current && c.lastErr == "" {
		c.mu.Unlock()
		return nil
	}
	def, ok := c.cat.Get(name)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	c.loading = true
	c.lastErr = ""
	st := c.statusLocked()
	c.mu.Unlock()
	c.notifyStatus(st)

	physical := naming.PhysicalName(name)
	if err := c.materialize(ctx, name, physical, def); err != nil {
		c.fail(err)
		return fmt.Errorf("load context %q: %w", name, err)
	}
	c.ops.SetActiveDatabase(physical)
	c.complete(name)
	return nil
}

// SwitchOrLoad activates the named context, reusing its physical database
// when one already exists (fast path: no create, no schema, no seed) and
// delegating to Load when it does not (slow path).
//
// When the name is already current and error-free, the only possible work
// is re-designating the expected database as active if something else moved
// the designation; no rebuild and no notification happen in that case.
func (c *Controller) SwitchOrLoad(ctx context.Context, name string) error {
	c.mu.Lock()
	same := name == c.current && c.lastErr == ""
	c.mu.Unlock()

	physical := naming.PhysicalName(name)
	if same {
		if c.ops.ActiveDatabase() != physical {
			c.ops.SetActiveDatabase(physical)
		}
		return nil
	}

	exists, err := c.ops.DatabaseExists(ctx, physical)
	if err != nil {
		return fmt.Errorf("switch context %q: %w", name, err)
	}
	if !exists {
		return c.Load(ctx, name)
	}

	c.ops.SetActiveDatabase(physical)
	c.complete(name)
	return nil
}

// Reset rebuilds the current context from its definition: destructive
// recreate plus schema and seed reapplication. Returns ErrNoContextLoaded
// when nothing is active.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	name := c.current
	if name == "" {
		c.mu.Unlock()
		return ErrNoContextLoaded
	}
	// Clear the name first so Load's same-name short-circuit cannot
	// suppress the rebuild.
	c.current = ""
	c.mu.Unlock()

	return c.Load(ctx, name)
}

// Clear deactivates the current context without touching any physical
// database. It never fails.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.current = ""
	c.lastErr = ""
	st := c.statusLocked()
	c.mu.Unlock()

	c.notifyStatus(st)
	c.notifyContextChanged("")
}

// Status returns a snapshot of the controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// IsLoaded reports whether name is the selected context. The empty string
// matches exactly when no context is active. The check intentionally
// ignores loading and error state - it answers "is this the selected
// context", not "is it ready".
func (c *Controller) IsLoaded(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == name
}

// Current returns the current context name, or "" when none is active.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// LastLoadedAt returns the unix timestamp of the most recent successful
// load or switch, or 0 if none has completed.
func (c *Controller) LastLoadedAt() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastLoadedAt
}

// statusLocked derives the Status snapshot. Callers must hold mu.
func (c *Controller) statusLocked() Status {
	return Status{
		Name:      c.current,
		IsReady:   c.current != "" && !c.loading && c.lastErr == "",
		IsLoading: c.loading,
		Error:     c.lastErr,
	}
}

// materialize performs the destructive rebuild pipeline. Collaborator
// errors are returned unwrapped so the caller can record the message
// verbatim. Seed statement failures are consumed here and never returned.
func (c *Controller) materialize(ctx context.Context, name, physical string, def *catalog.Definition) error {
	if err := c.ops.CreateDatabase(ctx, physical); err != nil {
		return err
	}

	if strings.TrimSpace(def.Schema) != "" {
		if err := c.ops.ExecuteSchema(ctx, physical, CleanSchema(def.Schema)); err != nil {
			return err
		}
	}

	if strings.TrimSpace(def.Seed) != "" {
		statements := splitter.Split(def.Seed)
		for i, stmt := range statements {
			if err := c.ops.ExecuteWrite(ctx, physical, stmt); err != nil {
				c.seedSkip(name, stmt, err)
			}
			if c.onProgress != nil {
				c.onProgress(i+1, len(statements))
			}
		}
	}
	return nil
}

// fail records a load failure. The previous current name is left in place.
func (c *Controller) fail(err error) {
	c.mu.Lock()
	c.loading = false
	c.lastErr = err.Error()
	st := c.statusLocked()
	c.mu.Unlock()

	c.notifyStatus(st)
}

// complete commits name as the current context and announces it.
func (c *Controller) complete(name string) {
	c.mu.Lock()
	c.current = name
	c.loading = false
	c.lastErr = ""
	c.lastLoadedAt = c.now().Unix()
	st := c.statusLocked()
	c.mu.Unlock()

	c.notifyStatus(st)
	c.notifyContextChanged(name)
}

func (c *Controller) seedSkip(name, statement string, err error) {
	log.Event("context:load", "seed-skip").
		Context(name).
		Detail("statement", truncate(statement, 200)).
		Write(err)
	if c.onSeedSkip != nil {
		c.onSeedSkip(name, statement, err)
	}
}

// CleanSchema removes comment-only lines from schema text. The load applies
// the cleaned text as one operation; drift reporting compares against the
// same cleaned form.
func CleanSchema(schema string) string {
	lines := strings.Split(schema, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
