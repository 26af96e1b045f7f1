// Package database stores journal entries dated in the Arvelie calendar.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryPath opens a private in-memory journal, used by tests.
const MemoryPath = ":memory:"

var (
	// ErrNotFound is returned when a requested entry doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidEntry is returned when an entry fails validation before insert.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrSchemaOutdated is returned by Health until Migrate has run.
	ErrSchemaOutdated = errors.New("journal schema out of date")
)

// IsNotFound checks if an error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// DB is the journal store.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Tx is a journal transaction; entry writes made through it commit together.
type Tx struct {
	*sql.Tx
}

// Open connects to the journal at path, creating its directory if needed.
//
// The pool is held to one connection: SQLite has a single writer, and each
// connection to MemoryPath would otherwise see its own empty database.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); path != MemoryPath && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	logger.Info("journal opened", slog.String("path", path))
	return &DB{DB: db, logger: logger}, nil
}

// dsn enables WAL for file journals and waits out a locked writer for 5s.
// WAL does not apply to an in-memory database.
func dsn(path string) string {
	if path == MemoryPath {
		return path + "?_busy_timeout=5000"
	}
	return path + "?_journal_mode=WAL&_busy_timeout=5000"
}

// Close closes the journal.
func (db *DB) Close() error {
	db.logger.Info("closing journal")
	return db.DB.Close()
}

// Health reports whether the journal answers queries and carries every
// migration this build knows about.
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("journal query failed: %w", err)
	}
	if version < len(migrations) {
		return fmt.Errorf("%w: at %d of %d", ErrSchemaOutdated, version, len(migrations))
	}
	return nil
}

// SchemaVersion returns the number of migrations applied, 0 for a new file.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	return schemaVersion(ctx, db.DB)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func schemaVersion(ctx context.Context, q queryer) (int, error) {
	var exists int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`,
	).Scan(&exists)
	if err != nil || exists == 0 {
		return 0, err
	}

	var version int
	err = q.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}

// Migrate brings the journal schema up to date in one transaction and
// returns how many migrations it applied.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	applied := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				applied_at TEXT NOT NULL DEFAULT (datetime('now'))
			)
		`)
		if err != nil {
			return fmt.Errorf("create schema_migrations table: %w", err)
		}

		current, err := schemaVersion(ctx, tx)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}

		for i := current; i < len(migrations); i++ {
			m := migrations[i]
			version := i + 1
			db.logger.Info("applying migration",
				slog.Int("version", version),
				slog.String("name", m.name),
			)

			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("migration %d (%s): %w", version, m.name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
				version, m.name,
			); err != nil {
				return fmt.Errorf("record migration %d: %w", version, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("journal schema current",
		slog.Int("applied", applied),
		slog.Int("version", len(migrations)),
	)
	return applied, nil
}

// WithTx runs fn in a transaction, committing if it returns nil and
// rolling back otherwise. cmd/import uses it so a bad line leaves the
// journal untouched.
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	tx := &Tx{sqlTx}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
