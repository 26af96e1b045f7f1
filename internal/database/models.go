package database

import (
	"time"

	"github.com/zapponejosh/arvelie/internal/arvelie"
)

// Entry is a journal note attached to one Arvelie day.
type Entry struct {
	ID        int64     `json:"id"`
	Year      int       `json:"year"`
	DayOfYear int       `json:"day_of_year"`
	Arvelie   string    `json:"arvelie"`  // e.g. "25M03"
	ISODate   string    `json:"iso_date"` // YYYY-MM-DD
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry builds an unsaved entry for date d.
func NewEntry(d *arvelie.Date, note string) *Entry {
	return &Entry{
		Year:      d.Year(),
		DayOfYear: d.DayOfYear(),
		Arvelie:   d.String(),
		ISODate:   d.GregorianString(),
		Note:      note,
	}
}

// Date returns the entry's day as an arvelie.Date.
func (e *Entry) Date() (*arvelie.Date, error) {
	return arvelie.ParseISO(e.ISODate)
}

// EntryStats summarizes the journal.
type EntryStats struct {
	Total       int     `json:"total"`
	FirstDate   *string `json:"first_date,omitempty"` // ISO, nil when empty
	LastDate    *string `json:"last_date,omitempty"`
	SpecialDays int     `json:"special_days"` // entries on +00 or +01
}
