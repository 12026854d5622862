// Package dbops defines the database engine boundary for wkctx and provides
// a SQLite-backed implementation. The context controller depends only on the
// Operations interface, enabling testing with fakes and alternative engines.
package dbops

import (
	"context"
	"errors"
)

var (
	// ErrUnknownDatabase indicates the physical database has not been
	// created. Callers must CreateDatabase before applying schema or writes.
	ErrUnknownDatabase = errors.New("unknown database")
	// ErrBadStatement indicates a write statement the engine refuses to
	// accept (blank, or not a recognised write form).
	ErrBadStatement = errors.New("bad statement")
	// ErrStatementTooLarge is returned when a statement exceeds the
	// configured size limit.
	ErrStatementTooLarge = errors.New("statement too large")
)

// Operations is the narrow interface the context controller drives.
//
// CreateDatabase has create-or-replace semantics: prior contents of the
// physical database, if any, are discarded. The active database is a plain
// designation, not a lock - setting it does not touch database contents.
type Operations interface {
	// CreateDatabase creates the physical database, destructively replacing
	// any existing database of the same name.
	CreateDatabase(ctx context.Context, physical string) error

	// ExecuteSchema applies schema text to the database as one operation.
	ExecuteSchema(ctx context.Context, physical, schema string) error

	// ExecuteWrite applies a single write statement to the database.
	ExecuteWrite(ctx context.Context, physical, statement string) error

	// DatabaseExists reports whether the physical database exists.
	DatabaseExists(ctx context.Context, physical string) (bool, error)

	// ActiveDatabase returns the currently designated physical database,
	// or "" when none is designated.
	ActiveDatabase() string

	// SetActiveDatabase designates the physical database queries run
	// against.
	SetActiveDatabase(physical string)
}
