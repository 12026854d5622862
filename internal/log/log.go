// Package log provides centralised audit logging for wkctx operations.
// Entries are stored in ~/.wkctx/log/wkctx-log.db and track context
// lifecycle operations and MCP tool invocations across data directories.
//
// # Fluent API
//
// Use the fluent builder API to construct and write entries:
//
//	log.Event("context:load", "load").
//		Context(name).
//		Database(physical).
//		Detail("statements", n).
//		Write(err)
//
// The source parameter follows the format "context:{operation}" for CLI
// commands or "mcp:{tool}" for MCP tools. Seed statements skipped during a
// load are recorded with action "seed-skip".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single audit log entry.
type Entry struct {
	Source   string // e.g., "context:load", "mcp:wkctx_use"
	Action   string // verb: load, switch, reset, clear, seed-skip, drop
	Context  string // logical context name the operation targets
	Database string // physical database name, when known

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether the operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated ("context:use",
// "mcp:wkctx_load"); the action is the verb performed ("switch", "load",
// "reset", "clear", "seed-skip").
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Context sets the logical context name the operation targets.
func (b *Builder) Context(name string) *Builder {
	b.entry.Context = name
	return b
}

// Database sets the physical database name, when the operation has resolved
// one.
func (b *Builder) Database(physical string) *Builder {
	b.entry.Database = physical
	return b
}

// Detail adds a key-value pair to the entry's detail map. Use for
// operation-specific data: statement counts, skipped statement text, drift
// sizes. Can be called multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort
// logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetWorkspace sets the workspace identifier for subsequent entries.
// The dir should be the absolute path to the data directory.
func SetWorkspace(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.workspace = hash(dir)
	}
}

// Log writes an entry. Safe to call if the logger is not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
