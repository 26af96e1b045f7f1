package arvelie

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	isoPattern     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	arveliePattern = regexp.MustCompile(`^(\d{2})([A-Z+])(\d{2})$`)
)

// Option configures how dates are parsed.
type Option func(*options)

type options struct {
	yearOffset int
	now        func() time.Time
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MaxYearOffset is the largest century an Arvelie year can be read into.
const MaxYearOffset = 9900

// WithYearOffset adds offset to the two-digit year of an Arvelie string,
// e.g. WithYearOffset(2000) reads 25M03 as a day in 2025. The offset must
// pass ValidateYearOffset or ParseArvelie fails.
func WithYearOffset(offset int) Option {
	return func(o *options) { o.yearOffset = offset }
}

// ValidateYearOffset reports whether offset is a whole century in
// 0..MaxYearOffset. String writes year%100, so any other offset would
// not read back as the same two-digit year.
func ValidateYearOffset(offset int) error {
	if offset < 0 || offset > MaxYearOffset {
		return fmt.Errorf("%w: year offset %d not in 0..%d", ErrRange, offset, MaxYearOffset)
	}
	if offset%100 != 0 {
		return fmt.Errorf("%w: year offset %d is not a multiple of 100", ErrRange, offset)
	}
	return nil
}

// WithClock sets the source of the current date used when no input is given.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New builds a Date from any accepted input:
//   - nil: the current date from the clock option
//   - time.Time or GregorianDate: a Gregorian date
//   - string: an ISO date (YYYY-MM-DD) or an Arvelie date (YYLDD)
func New(input any, opts ...Option) (*Date, error) {
	switch v := input.(type) {
	case nil:
		return Today(opts...)
	case time.Time:
		return FromTime(v)
	case GregorianDate:
		return FromGregorian(v.Year, v.Month, v.Day)
	case string:
		return Parse(v, opts...)
	default:
		return nil, fmt.Errorf("%w: unsupported input type %T", ErrParse, input)
	}
}

// Today returns the current date according to the clock option.
func Today(opts ...Option) (*Date, error) {
	o := buildOptions(opts)
	return FromTime(o.now())
}

// FromTime converts the calendar day of t, in t's own location.
func FromTime(t time.Time) (*Date, error) {
	return FromGregorian(t.Year(), t.Month(), t.Day())
}

// FromGregorian converts a Gregorian year, month and day of month.
func FromGregorian(year int, month time.Month, day int) (*Date, error) {
	if year < 0 || year > MaxYear {
		return nil, fmt.Errorf("%w: year %d not in 0..%d", ErrRange, year, MaxYear)
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d not in 1..12", ErrRange, int(month))
	}
	if last := DaysInMonth(year, month); day < 1 || day > last {
		return nil, fmt.Errorf("%w: day %d not in 1..%d", ErrRange, day, last)
	}

	table := CumulativeDays(year)
	return &Date{
		year:      year,
		dayOfYear: table[month-1] + day - 1,
	}, nil
}

// Parse reads an ISO date (YYYY-MM-DD) or, failing that, an Arvelie date.
func Parse(s string, opts ...Option) (*Date, error) {
	switch {
	case isoPattern.MatchString(s):
		return ParseISO(s)
	case arveliePattern.MatchString(s):
		return ParseArvelie(s, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrParse, s)
	}
}

// ParseISO reads a strict YYYY-MM-DD date.
func ParseISO(s string) (*Date, error) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrParse, s)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	d, err := FromGregorian(year, time.Month(month), day)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrParse, s, err)
	}
	return d, nil
}

// ParseArvelie reads a strict YYLDD date, where L is A-Z or + for the
// year-day (+00) and leap-day (+01).
func ParseArvelie(s string, opts ...Option) (*Date, error) {
	m := arveliePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q is not an Arvelie date", ErrParse, s)
	}
	o := buildOptions(opts)
	if err := ValidateYearOffset(o.yearOffset); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrParse, s, err)
	}

	yy, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[3])

	year := yy + o.yearOffset

	var dayOfYear int
	if symbol := m[2][0]; symbol == '+' {
		switch {
		case day == 0:
			dayOfYear = YearDay
		case day == 1 && IsLeapYear(year):
			dayOfYear = LeapDay
		case day == 1:
			return nil, fmt.Errorf("%w: %q: %d is not a leap year", ErrParse, s, year)
		default:
			return nil, fmt.Errorf("%w: %q: special day must be 00 or 01", ErrParse, s)
		}
	} else {
		if day >= DaysPerMonth {
			return nil, fmt.Errorf("%w: %q: day %d not in 0..%d", ErrParse, s, day, DaysPerMonth-1)
		}
		dayOfYear = int(symbol-'A')*DaysPerMonth + day
	}

	return &Date{year: year, dayOfYear: dayOfYear}, nil
}
