package database

// migration is one forward-only schema step. Its version is its position
// in migrations, starting at 1; never reorder or edit an applied step.
type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{name: "entries", sql: migrationEntries},
	{name: "entries_date_index", sql: migrationEntriesDateIndex},
}

// migrationEntries creates the journal table.
//
// An entry is dated by (year, day_of_year), the zero-based Arvelie position.
// The Arvelie and ISO strings are stored alongside so exports and ad-hoc
// queries don't need to recompute them.
const migrationEntries = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    year INTEGER NOT NULL CHECK (year BETWEEN 0 AND 9999),

    -- 0..363 lettered days, 364 year-day, 365 leap-day
    day_of_year INTEGER NOT NULL CHECK (day_of_year BETWEEN 0 AND 365),

    -- e.g. "25M03" / "2025-06-21"
    arvelie TEXT NOT NULL,
    iso_date TEXT NOT NULL,

    note TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationEntriesDateIndex adds the lookup index used by every list query.
const migrationEntriesDateIndex = `
CREATE INDEX IF NOT EXISTS idx_entries_date
    ON entries(year, day_of_year);
`
