// Package store implements the student tracker's persistence layer on a
// single-file SQLite database.
//
// The store owns the relational schema (students, classes, attendance,
// marks, comments), the write operations that maintain its invariants,
// and the read side (search, pagination, group listing, per-student
// aggregates). Referential cleanup is delegated to ON DELETE CASCADE
// foreign keys, enforced by enabling the foreign_keys pragma on every
// connection.
package store

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding all student tracker data.
// It is safe for use by a single logical owner; concurrent writers are
// serialized by the caller, not here.
type Store struct {
	db   *sqlx.DB
	path string
}

// Open opens (creating if necessary) the store file at path and provisions
// the schema. Schema provisioning is idempotent; opening an existing store
// never alters its data. A store that fails to open is unusable and the
// error is fatal to the caller.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		url.PathEscape(path), busyTimeout.Milliseconds())

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	// SQLite allows one writer at a time; a larger pool only produces
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// Path returns the location of the store file, used by backups.
func (s *Store) Path() string {
	return s.path
}

// Checkpoint flushes the write-ahead log into the main store file. WAL
// mode keeps committed rows in a -wal sidecar, so a plain copy of the
// store file is only a complete database after a checkpoint.
func (s *Store) Checkpoint() error {
	if _, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("checkpoint store: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
