// Package view holds the output shapes shared by the HTTP API and the CLI.
package view

import (
	"time"

	"github.com/zapponejosh/arvelie/internal/arvelie"
	"github.com/zapponejosh/arvelie/internal/season"
)

// Date is a date rendered in both calendars.
type Date struct {
	Arvelie    string `json:"arvelie" yaml:"arvelie"`
	ISO        string `json:"iso" yaml:"iso"`
	Year       int    `json:"year" yaml:"year"`
	DayOfYear  int    `json:"day_of_year" yaml:"day_of_year"`
	Month      string `json:"month" yaml:"month"` // "A".."Z" or "+"
	Day        int    `json:"day" yaml:"day"`     // 0-13, or 0/1 on a special day
	SpecialDay bool   `json:"special_day" yaml:"special_day"`
	LeapYear   bool   `json:"leap_year" yaml:"leap_year"`
}

// NewDate renders d.
func NewDate(d *arvelie.Date) Date {
	day := d.DayInMonth()
	if d.IsSpecialDay() {
		day = d.DayOfYear() - arvelie.YearDay
	}
	return Date{
		Arvelie:    d.String(),
		ISO:        d.GregorianString(),
		Year:       d.Year(),
		DayOfYear:  d.DayOfYear(),
		Month:      string(d.MonthLetter()),
		Day:        day,
		SpecialDay: d.IsSpecialDay(),
		LeapYear:   d.IsLeapYear(),
	}
}

// Season is a season classification with its labels.
type Season struct {
	Season string `json:"season" yaml:"season"`
	Period string `json:"period" yaml:"period"`
	Month  int    `json:"month" yaml:"month"`
	Hour   int    `json:"hour" yaml:"hour"`
}

// NewSeason renders r for the given month and hour.
func NewSeason(r season.Result, month time.Month, hour int, names bool) Season {
	s, p := r.Labels(names)
	return Season{Season: s, Period: p, Month: int(month), Hour: hour}
}

// Today is the current date together with its season.
type Today struct {
	Date   Date   `json:"date" yaml:"date"`
	Season Season `json:"season" yaml:"season"`
	Time   string `json:"time" yaml:"time"` // RFC 3339 in the configured zone
}

// NewToday renders the moment now, whose location decides the calendar day.
func NewToday(d *arvelie.Date, now time.Time, traditional bool) Today {
	return Today{
		Date:   NewDate(d),
		Season: NewSeason(season.ClassifyTime(now, traditional), now.Month(), now.Hour(), true),
		Time:   now.Format(time.RFC3339),
	}
}
