package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/vmunix/mediascan/internal/migrations"

	_ "modernc.org/sqlite"
)

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store provides access to catalog data.
type Store struct {
	db *sql.DB
}

// NewStore creates a new catalog store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if needed) the SQLite database at dsn, enables
// foreign keys and applies the schema.
//
// The pool is limited to one connection: foreign_keys is a per-connection
// pragma and ":memory:" databases are per-connection as well. Callers must not
// use the Store while a Tx from it is open.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// DSN converts a configured connection string into a modernc.org/sqlite DSN.
// URLs follow the SQLAlchemy form: "sqlite:///rel.db" is relative,
// "sqlite:////abs/path.db" is absolute and a bare "sqlite://" is in memory.
// Anything else is passed through as a file path.
func DSN(connect string) string {
	switch {
	case connect == "sqlite://":
		return ":memory:"
	case strings.HasPrefix(connect, "sqlite:///"):
		return strings.TrimPrefix(connect, "sqlite:///")
	case strings.HasPrefix(connect, "sqlite://"):
		return strings.TrimPrefix(connect, "sqlite://")
	default:
		return connect
	}
}

// Begin starts a transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a database transaction with the same methods as Store.
type Tx struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}
