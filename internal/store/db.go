// Package store wraps the SQLite database behind typed queries for the
// roster, album, track and message tables.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sqlx.DB and *sqlx.Tx so every query method
// works inside and outside a transaction.
type querier interface {
	sqlx.Ext
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
}

type DB struct {
	q    querier
	root *sqlx.DB
}

func NewSQLiteDB(dsn string) (*DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Set pragmas for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{q: db, root: db}, nil
}

// RunInTx runs fn against a transactional view of the database, committing
// when fn returns nil and rolling back otherwise.
func (db *DB) RunInTx(ctx context.Context, fn func(txDB *DB) error) error {
	tx, err := db.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	txDB := &DB{q: tx, root: db.root}
	if err := fn(txDB); err != nil {
		return err
	}
	return tx.Commit()
}

// Savepoint runs fn inside a named savepoint so one failed unit can be rolled
// back without abandoning the surrounding transaction.
func (db *DB) Savepoint(name string, fn func() error) error {
	if _, err := db.q.Exec("SAVEPOINT " + name); err != nil {
		return fmt.Errorf("failed to open savepoint: %w", err)
	}
	if err := fn(); err != nil {
		if _, rbErr := db.q.Exec("ROLLBACK TO " + name); rbErr != nil {
			return fmt.Errorf("failed to roll back savepoint after %v: %w", err, rbErr)
		}
		if _, relErr := db.q.Exec("RELEASE " + name); relErr != nil {
			return fmt.Errorf("failed to release savepoint after %v: %w", err, relErr)
		}
		return err
	}
	if _, err := db.q.Exec("RELEASE " + name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.root.Close()
}
