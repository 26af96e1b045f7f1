package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/arvelie/internal/arvelie"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so every query below
// can run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const entryColumns = `id, year, day_of_year, arvelie, iso_date, note, created_at`

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var createdAt sql.NullString

	if err := row.Scan(&e.ID, &e.Year, &e.DayOfYear, &e.Arvelie, &e.ISODate, &e.Note, &createdAt); err != nil {
		return nil, err
	}
	if t := parseTimestamp(createdAt); t != nil {
		e.CreatedAt = *t
	}
	return &e, nil
}

func queryEntries(ctx context.Context, q querier, where string, args ...any) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` + where + ` ORDER BY year, day_of_year, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// validateEntry checks that the stored position is a real Arvelie day and
// refreshes the derived strings from it.
func validateEntry(e *Entry) error {
	if strings.TrimSpace(e.Note) == "" {
		return fmt.Errorf("%w: note is required", ErrInvalidEntry)
	}

	d, err := arvelie.FromGregorian(e.Year, time.January, 1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if err := d.SetDayOfYear(e.DayOfYear); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	e.Arvelie = d.String()
	e.ISODate = d.GregorianString()
	return nil
}

// =============================================================================
// Entry Queries
// =============================================================================

func createEntry(ctx context.Context, q querier, e *Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}

	query := `
		INSERT INTO entries (year, day_of_year, arvelie, iso_date, note)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at
	`

	var createdAt sql.NullString
	err := q.QueryRowContext(ctx, query, e.Year, e.DayOfYear, e.Arvelie, e.ISODate, e.Note).
		Scan(&e.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	if t := parseTimestamp(createdAt); t != nil {
		e.CreatedAt = *t
	}

	return nil
}

// CreateEntry inserts a journal entry and fills in its ID and CreatedAt.
// Returns ErrInvalidEntry if the note is empty or the day does not exist
// in the entry's year.
func (db *DB) CreateEntry(ctx context.Context, e *Entry) error {
	return createEntry(ctx, db.DB, e)
}

// CreateEntry inserts a journal entry within the transaction.
func (tx *Tx) CreateEntry(ctx context.Context, e *Entry) error {
	return createEntry(ctx, tx.Tx, e)
}

// GetEntry retrieves one entry by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`

	e, err := scanEntry(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query entry %d: %w", id, err)
	}
	return e, nil
}

// ListEntriesByYear returns every entry in an Arvelie year, in date order.
func (db *DB) ListEntriesByYear(ctx context.Context, year int) ([]Entry, error) {
	return queryEntries(ctx, db.DB, `year = ?`, year)
}

// ListEntriesByMonth returns the entries of one lettered month (0-25), or of
// the year-day and leap-day when month is arvelie.NoMonth.
func (db *DB) ListEntriesByMonth(ctx context.Context, year, month int) ([]Entry, error) {
	if month == arvelie.NoMonth {
		return queryEntries(ctx, db.DB, `year = ? AND day_of_year >= ?`, year, arvelie.YearDay)
	}
	if month < 0 || month >= arvelie.Months {
		return nil, fmt.Errorf("%w: month %d", arvelie.ErrRange, month)
	}

	first := month * arvelie.DaysPerMonth
	return db.ListEntriesInRange(ctx, year, first, first+arvelie.DaysPerMonth-1)
}

// ListEntriesInRange returns the entries of a year whose day-of-year lies in
// [from, to], in date order.
func (db *DB) ListEntriesInRange(ctx context.Context, year, from, to int) ([]Entry, error) {
	if from > to {
		return nil, fmt.Errorf("%w: range %d..%d is reversed", arvelie.ErrRange, from, to)
	}
	return queryEntries(ctx, db.DB, `year = ? AND day_of_year BETWEEN ? AND ?`, year, from, to)
}

// DeleteEntry removes an entry by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) DeleteEntry(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CountEntries returns the number of stored entries.
func (db *DB) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// GetEntryStats summarizes the journal.
func (db *DB) GetEntryStats(ctx context.Context) (*EntryStats, error) {
	query := `
		SELECT
			COUNT(*),
			MIN(iso_date),
			MAX(iso_date),
			COALESCE(SUM(CASE WHEN day_of_year >= ? THEN 1 ELSE 0 END), 0)
		FROM entries
	`

	var stats EntryStats
	var first, last sql.NullString
	err := db.QueryRowContext(ctx, query, arvelie.YearDay).
		Scan(&stats.Total, &first, &last, &stats.SpecialDays)
	if err != nil {
		return nil, fmt.Errorf("query entry stats: %w", err)
	}

	if first.Valid {
		stats.FirstDate = &first.String
	}
	if last.Valid {
		stats.LastDate = &last.String
	}

	return &stats, nil
}
