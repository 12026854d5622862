// sqlite.go implements Operations on SQLite, one database file per physical
// database. This is the only file that imports the SQLite driver.
//
// The engine does not interpret statements: each context database carries a
// journal of what was applied to it (schema text plus individual seed
// statements), which is what the drift report and the status surfaces read
// back. Statement validation is shallow - a statement must look like a write
// form - so malformed seed lines surface as per-statement errors rather than
// corrupting the journal.

package dbops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// DefaultMaxStatement caps individual seed statement size.
const DefaultMaxStatement = 1 << 20 // 1 MB

// SQLite implements Operations with one SQLite file per physical database
// under <root>/databases. The active-database designation is persisted in
// <root>/active so it survives process restarts.
type SQLite struct {
	root         string
	maxStatement int

	mu     sync.Mutex
	active string
	conns  map[string]*sql.DB
}

// Compile-time interface compliance check.
var _ Operations = (*SQLite)(nil)

// Open prepares the engine rooted at dir, creating the databases directory
// if needed and restoring the persisted active-database designation.
// The caller should call Close on the returned engine.
func Open(dir string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Join(dir, "databases"), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &SQLite{
		root:         dir,
		maxStatement: DefaultMaxStatement,
		conns:        make(map[string]*sql.DB),
	}
	if b, err := os.ReadFile(s.activePath()); err == nil {
		s.active = strings.TrimSpace(string(b))
	}
	return s, nil
}

// Root returns the data directory the engine was opened with.
func (s *SQLite) Root() string { return s.root }

// SetMaxStatement overrides the statement size limit. Zero disables it.
func (s *SQLite) SetMaxStatement(n int) {
	s.maxStatement = n
}

// Close releases all database connections.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for name, db := range s.conns {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(s.conns, name)
	}
	return errors.Join(errs...)
}

func (s *SQLite) activePath() string {
	return filepath.Join(s.root, "active")
}

func (s *SQLite) dbPath(physical string) string {
	return filepath.Join(s.root, "databases", physical+".db")
}

// CreateDatabase destructively creates or replaces the physical database
// and initialises its journal tables.
func (s *SQLite) CreateDatabase(ctx context.Context, physical string) error {
	s.mu.Lock()
	if db, ok := s.conns[physical]; ok {
		db.Close()
		delete(s.conns, physical)
	}
	s.mu.Unlock()

	path := s.dbPath(physical)
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("replace database %s: %w", physical, err)
		}
	}

	db, err := s.conn(physical, true)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_text (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			applied_at INTEGER NOT NULL,
			text       TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS seed_statements (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			applied_at INTEGER NOT NULL,
			stmt       TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("initialise database %s: %w", physical, err)
	}
	return nil
}

// ExecuteSchema records schema text as the database's single schema
// operation, replacing any previously applied schema.
func (s *SQLite) ExecuteSchema(ctx context.Context, physical, schema string) error {
	db, err := s.conn(physical, false)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_text (id, applied_at, text) VALUES (1, ?, ?)`,
		time.Now().Unix(), schema)
	if err != nil {
		return fmt.Errorf("apply schema to %s: %w", physical, err)
	}
	return nil
}

// ExecuteWrite appends a single write statement to the database journal.
// Blank statements and statements that are not a recognised write form are
// rejected with ErrBadStatement; oversize statements with
// ErrStatementTooLarge.
func (s *SQLite) ExecuteWrite(ctx context.Context, physical, statement string) error {
	trimmed := strings.TrimSpace(statement)
	if trimmed == "" {
		return fmt.Errorf("%w: blank statement", ErrBadStatement)
	}
	if !strings.HasPrefix(trimmed, "insert") && !strings.HasPrefix(trimmed, "match") {
		return fmt.Errorf("%w: %q is not a write statement", ErrBadStatement, firstLine(trimmed))
	}
	if s.maxStatement > 0 && len(statement) > s.maxStatement {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrStatementTooLarge, len(statement), s.maxStatement)
	}

	db, err := s.conn(physical, false)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO seed_statements (applied_at, stmt) VALUES (?, ?)`,
		time.Now().Unix(), statement); err != nil {
		return fmt.Errorf("write to %s: %w", physical, err)
	}
	return nil
}

// DatabaseExists reports whether the physical database file exists.
func (s *SQLite) DatabaseExists(_ context.Context, physical string) (bool, error) {
	_, err := os.Stat(s.dbPath(physical))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat database %s: %w", physical, err)
	}
	return true, nil
}

// ActiveDatabase returns the designated physical database, or "".
func (s *SQLite) ActiveDatabase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActiveDatabase designates the database queries run against. The
// designation is persisted best-effort; a marker write failure does not
// undo the in-memory designation.
func (s *SQLite) SetActiveDatabase(physical string) {
	s.mu.Lock()
	s.active = physical
	s.mu.Unlock()

	if err := os.WriteFile(s.activePath(), []byte(physical+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "wkctx: persist active database: %v\n", err)
	}
}

// SchemaText returns the schema recorded in the database, or "" when no
// schema has been applied.
func (s *SQLite) SchemaText(ctx context.Context, physical string) (string, error) {
	db, err := s.conn(physical, false)
	if err != nil {
		return "", err
	}
	var text string
	err = db.QueryRowContext(ctx, `SELECT text FROM schema_text WHERE id = 1`).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read schema of %s: %w", physical, err)
	}
	return text, nil
}

// StatementCount returns the number of seed statements applied to the
// database.
func (s *SQLite) StatementCount(ctx context.Context, physical string) (int64, error) {
	db, err := s.conn(physical, false)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seed_statements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count statements of %s: %w", physical, err)
	}
	return n, nil
}

// ListDatabases returns the physical names of all databases under the data
// directory, sorted by name.
func (s *SQLite) ListDatabases() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "databases"))
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".db") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".db"))
	}
	return names, nil
}

// DropDatabase removes a physical database. Dropping the active database
// clears the designation.
func (s *SQLite) DropDatabase(physical string) error {
	s.mu.Lock()
	if db, ok := s.conns[physical]; ok {
		db.Close()
		delete(s.conns, physical)
	}
	s.mu.Unlock()

	path := s.dbPath(physical)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrUnknownDatabase, physical)
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("drop database %s: %w", physical, err)
		}
	}
	if s.ActiveDatabase() == physical {
		s.SetActiveDatabase("")
	}
	return nil
}

// conn returns a cached connection to the physical database, opening one if
// needed. Unless create is set, a missing database file is an
// ErrUnknownDatabase - sql.Open would silently create it otherwise.
func (s *SQLite) conn(physical string, create bool) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if db, ok := s.conns[physical]; ok {
		return db, nil
	}

	path := s.dbPath(physical)
	if !create {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDatabase, physical)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", physical, err)
	}

	// WAL with a busy timeout keeps concurrent CLI and MCP access from
	// tripping over "database is locked". Synchronous NORMAL is safe under
	// WAL and much cheaper than FULL.
	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure database %s: %w", physical, err)
		}
	}

	s.conns[physical] = db
	return db, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
