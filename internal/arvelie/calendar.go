// Package arvelie converts dates between the Gregorian calendar and the
// Arvelie alphabetic calendar.
//
// An Arvelie year has 26 months of 14 days, labelled A through Z, followed
// by one year-day (+00) and, in leap years, a leap-day (+01). Dates are kept
// as a zero-based day-of-year count:
//
//	0..363  lettered days (month = day/14, day in month = day%14)
//	364     year-day, written YY+00
//	365     leap-day, written YY+01 (leap years only)
//
// Gregorian 2025-06-21 is day 171 of 2025, which is 25M03.
package arvelie

import "time"

// Calendar shape constants.
const (
	// DaysPerMonth is the length of every lettered month.
	DaysPerMonth = 14

	// Months is the number of lettered months (A..Z).
	Months = 26

	// YearDay is the day-of-year of the first day outside any month.
	YearDay = Months * DaysPerMonth

	// LeapDay is the day-of-year of the second special day in leap years.
	LeapDay = YearDay + 1

	// NoMonth is returned by Month and DayInMonth on a special day.
	NoMonth = -1

	// MaxYear is the largest year a Date can hold.
	MaxYear = 9999
)

// Days elapsed before the first of each Gregorian month.
var (
	cumulativeCommon = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	cumulativeLeap   = [12]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}
)

// IsLeapYear reports whether year is a leap year under the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// CumulativeDays returns, for each Gregorian month index 0-11, the number of
// days in the year before that month starts.
func CumulativeDays(year int) [12]int {
	if IsLeapYear(year) {
		return cumulativeLeap
	}
	return cumulativeCommon
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// MaxDayOfYear returns the last valid zero-based day-of-year for year.
func MaxDayOfYear(year int) int {
	return DaysInYear(year) - 1
}

// DaysInMonth returns the length of a Gregorian month, or 0 if month is not
// between January and December.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	table := CumulativeDays(year)
	if month == time.December {
		return DaysInYear(year) - table[11]
	}
	return table[month] - table[month-1]
}
