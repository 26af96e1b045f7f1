package arvelie

import "errors"

var (
	// ErrParse is returned when input matches none of the accepted date shapes.
	ErrParse = errors.New("arvelie: unrecognized date")

	// ErrRange is returned when a setter or constructor receives a value
	// outside its valid range. The date is left unchanged.
	ErrRange = errors.New("arvelie: value out of range")

	// ErrNoMonth is returned by SetDay on the year-day or leap-day.
	ErrNoMonth = errors.New("arvelie: special day has no month")
)

// IsParseError checks if an error is a parse error.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsRangeError checks if an error is a range error.
func IsRangeError(err error) bool {
	return errors.Is(err, ErrRange)
}
