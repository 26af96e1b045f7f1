// Package season classifies a Gregorian month and hour into one of four
// seasons and one of four periods of the day.
package season

import (
	"fmt"
	"strconv"
	"time"
)

// Season is one of the four seasons.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

var seasonNames = [...]string{"spring", "summer", "autumn", "winter"}

// String returns the lowercase season name.
func (s Season) String() string {
	if s < Spring || s > Winter {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// DayPeriod is one of the four periods of a day.
type DayPeriod int

const (
	Night DayPeriod = iota
	Morning
	Day
	Evening
)

var periodNames = [...]string{"night", "morning", "day", "evening"}

// String returns the lowercase period name.
func (p DayPeriod) String() string {
	if p < Night || p > Evening {
		return fmt.Sprintf("DayPeriod(%d)", int(p))
	}
	return periodNames[p]
}

// Month to season, indexed by month-1.
var (
	// Traditional seasons rotate every month.
	traditionalSeasons = [12]Season{
		Spring, Summer, Autumn, Winter,
		Spring, Summer, Autumn, Winter,
		Spring, Summer, Autumn, Winter,
	}

	// Meteorological seasons last three consecutive months.
	blockSeasons = [12]Season{
		Spring, Spring, Summer, Summer, Summer, Autumn,
		Autumn, Autumn, Winter, Winter, Winter, Spring,
	}
)

// Period of the day for every hour, indexed by season then hour.
var periods = [4][24]DayPeriod{
	Spring: {0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 0, 0, 0, 0},
	Summer: {0, 0, 0, 0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 0, 0, 0},
	Autumn: {0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 0, 0, 0, 0},
	Winter: {0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 3, 3, 0, 0, 0, 0, 0},
}

// Of returns the season for a Gregorian month.
func Of(month time.Month, traditional bool) (Season, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("invalid month: %d", int(month))
	}
	if traditional {
		return traditionalSeasons[month-1], nil
	}
	return blockSeasons[month-1], nil
}

// PeriodOf returns the period of the day for an hour in a season.
func PeriodOf(s Season, hour int) (DayPeriod, error) {
	if s < Spring || s > Winter {
		return 0, fmt.Errorf("invalid season: %d", int(s))
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour: %d", hour)
	}
	return periods[s][hour], nil
}

// Result is a season together with the period of the day.
type Result struct {
	Season Season
	Period DayPeriod
}

// Classify returns the season and period for a month and hour.
func Classify(month time.Month, hour int, traditional bool) (Result, error) {
	s, err := Of(month, traditional)
	if err != nil {
		return Result{}, err
	}
	p, err := PeriodOf(s, hour)
	if err != nil {
		return Result{}, err
	}
	return Result{Season: s, Period: p}, nil
}

// ClassifyTime classifies the month and hour of t in its own location.
func ClassifyTime(t time.Time, traditional bool) Result {
	// Month and hour from a time.Time are always in range.
	r, _ := Classify(t.Month(), t.Hour(), traditional)
	return r
}

// Labels returns the season and period as names, or as their numbers 0-3
// when useNames is false.
func (r Result) Labels(useNames bool) (season, period string) {
	if useNames {
		return r.Season.String(), r.Period.String()
	}
	return strconv.Itoa(int(r.Season)), strconv.Itoa(int(r.Period))
}
