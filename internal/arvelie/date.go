package arvelie

import (
	"fmt"
	"time"
)

// Date is a day in the Arvelie calendar.
//
// The day-of-year is the only stored position; month and day-in-month are
// derived from it on every read. A Date is not safe for concurrent mutation.
type Date struct {
	year      int
	dayOfYear int
}

// GregorianDate is a plain year/month/day triple with no time of day.
type GregorianDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, int(g.Month), g.Day)
}

// -----------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------

// Year returns the Arvelie year.
func (d *Date) Year() int { return d.year }

// DayOfYear returns the zero-based day of the year.
func (d *Date) DayOfYear() int { return d.dayOfYear }

// IsLeapYear reports whether the date's year is a leap year.
func (d *Date) IsLeapYear() bool { return IsLeapYear(d.year) }

// IsSpecialDay reports whether the date is the year-day or the leap-day.
func (d *Date) IsSpecialDay() bool { return d.dayOfYear >= YearDay }

// Month returns the month index 0-25 (A-Z), or NoMonth on a special day.
func (d *Date) Month() int {
	if d.IsSpecialDay() {
		return NoMonth
	}
	return d.dayOfYear / DaysPerMonth
}

// DayInMonth returns the day within the month 0-13, or NoMonth on a special day.
func (d *Date) DayInMonth() int {
	if d.IsSpecialDay() {
		return NoMonth
	}
	return d.dayOfYear % DaysPerMonth
}

// MonthLetter returns the month symbol: 'A' through 'Z', or '+' on a special day.
func (d *Date) MonthLetter() byte {
	if d.IsSpecialDay() {
		return '+'
	}
	return byte('A' + d.Month())
}

// Equal reports whether both dates name the same day.
func (d *Date) Equal(other *Date) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.year == other.year && d.dayOfYear == other.dayOfYear
}

// -----------------------------------------------------------------
// Mutators
// -----------------------------------------------------------------

// SetYear changes the year. The day-of-year is clamped to the last day of the
// new year, so the leap-day becomes the year-day when moving to a common year.
func (d *Date) SetYear(year int) error {
	if year < 0 || year > MaxYear {
		return fmt.Errorf("%w: year %d not in 0..%d", ErrRange, year, MaxYear)
	}
	d.year = year
	d.clamp()
	return nil
}

// SetMonth moves the date to the given month (0-25), keeping the day within
// the month. On a special day the result is the first day of the month.
func (d *Date) SetMonth(month int) error {
	if month < 0 || month >= Months {
		return fmt.Errorf("%w: month %d not in 0..%d", ErrRange, month, Months-1)
	}
	day := 0
	if !d.IsSpecialDay() {
		day = d.DayInMonth()
	}
	d.dayOfYear = month*DaysPerMonth + day
	return nil
}

// SetDay moves the date to the given day (0-13) of its current month.
func (d *Date) SetDay(day int) error {
	if day < 0 || day >= DaysPerMonth {
		return fmt.Errorf("%w: day %d not in 0..%d", ErrRange, day, DaysPerMonth-1)
	}
	if d.IsSpecialDay() {
		return fmt.Errorf("%w: %w", ErrRange, ErrNoMonth)
	}
	d.dayOfYear = d.Month()*DaysPerMonth + day
	return nil
}

// SetDayOfYear replaces the zero-based day-of-year.
func (d *Date) SetDayOfYear(dayOfYear int) error {
	if last := MaxDayOfYear(d.year); dayOfYear < 0 || dayOfYear > last {
		return fmt.Errorf("%w: day of year %d not in 0..%d", ErrRange, dayOfYear, last)
	}
	d.dayOfYear = dayOfYear
	return nil
}

// AddYears moves the date n years forward. A leap-day that lands in a common
// year becomes that year's year-day; clamped reports when that happened.
func (d *Date) AddYears(n int) (clamped bool, err error) {
	if n < 0 {
		return false, fmt.Errorf("%w: cannot add %d years", ErrRange, n)
	}
	if d.year+n > MaxYear {
		return false, fmt.Errorf("%w: year %d exceeds %d", ErrRange, d.year+n, MaxYear)
	}
	d.year += n
	return d.clamp(), nil
}

// clamp pulls the day-of-year back inside the current year.
func (d *Date) clamp() bool {
	if last := MaxDayOfYear(d.year); d.dayOfYear > last {
		d.dayOfYear = last
		return true
	}
	return false
}

// -----------------------------------------------------------------
// Serializers
// -----------------------------------------------------------------

// String formats the date in Arvelie notation: YY, month letter, DD.
// The year is always written modulo 100, including on special days.
func (d *Date) String() string {
	yy := d.year % 100
	switch d.dayOfYear {
	case YearDay:
		return fmt.Sprintf("%02d+00", yy)
	case LeapDay:
		return fmt.Sprintf("%02d+01", yy)
	}
	return fmt.Sprintf("%02d%c%02d", yy, d.MonthLetter(), d.DayInMonth())
}

// Gregorian returns the Gregorian calendar date for d.
func (d *Date) Gregorian() GregorianDate {
	table := CumulativeDays(d.year)
	month := len(table) - 1
	for month > 0 && table[month] > d.dayOfYear {
		month--
	}
	return GregorianDate{
		Year:  d.year,
		Month: time.Month(month + 1),
		Day:   d.dayOfYear - table[month] + 1,
	}
}

// GregorianString formats the date as YYYY-MM-DD.
func (d *Date) GregorianString() string {
	return d.Gregorian().String()
}

// Time returns midnight UTC of the date.
func (d *Date) Time() time.Time {
	g := d.Gregorian()
	return time.Date(g.Year, g.Month, g.Day, 0, 0, 0, 0, time.UTC)
}

// MarshalText encodes the date as YYYY-MM-DD, which keeps the century.
func (d *Date) MarshalText() ([]byte, error) {
	return []byte(d.GregorianString()), nil
}

// UnmarshalText accepts either an ISO or an Arvelie date.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
