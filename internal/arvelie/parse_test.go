package arvelie

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantDoty  int
		wantShort string
	}{
		{"first day of year", "2025-01-01", 2025, 0, "25A00"},
		{"end of first month", "2025-01-14", 2025, 13, "25A13"},
		{"second month", "2025-01-15", 2025, 14, "25B00"},
		{"midsummer", "2025-06-21", 2025, 171, "25M03"},
		{"last lettered day", "2025-12-30", 2025, 363, "25Z13"},
		{"year day", "2025-12-31", 2025, 364, "25+00"},
		{"leap february", "2024-02-29", 2024, 59, "24E03"},
		{"leap year day", "2024-12-30", 2024, 364, "24+00"},
		{"leap day", "2024-12-31", 2024, 365, "24+01"},
		{"arvelie first day", "25A00", 25, 0, "25A00"},
		{"arvelie midsummer", "25M03", 25, 171, "25M03"},
		{"arvelie year day", "25+00", 25, 364, "25+00"},
		{"arvelie leap day", "24+01", 24, 365, "24+01"},
		{"arvelie year zero", "00+01", 0, 365, "00+01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if d.Year() != tt.wantYear {
				t.Errorf("Year() = %d, want %d", d.Year(), tt.wantYear)
			}
			if d.DayOfYear() != tt.wantDoty {
				t.Errorf("DayOfYear() = %d, want %d", d.DayOfYear(), tt.wantDoty)
			}
			if got := d.String(); got != tt.wantShort {
				t.Errorf("String() = %q, want %q", got, tt.wantShort)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"not-a-date",
		"99Z99",
		"9Z99",
		"25M14",
		"25a03",
		"25+02",
		"25+01", // 25 is not a leap year
		"2025-6-21",
		"25-06-21",
		"2025/06/21",
		"2025-13-01",
		"2025-00-10",
		"2025-02-29",
		"2025-04-31",
		"2025-01-00",
		" 2025-01-01",
		"25M03 ",
		"２０２５-01-01",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			d, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", input, d)
			}
			if d != nil {
				t.Errorf("Parse(%q) returned a date alongside the error", input)
			}
			if !IsParseError(err) {
				t.Errorf("Parse(%q) error = %v, want ErrParse", input, err)
			}
		})
	}
}

func TestParseArvelie_YearOffset(t *testing.T) {
	d, err := ParseArvelie("25M03", WithYearOffset(2000))
	if err != nil {
		t.Fatalf("ParseArvelie() error = %v", err)
	}
	if d.Year() != 2025 {
		t.Errorf("Year() = %d, want 2025", d.Year())
	}
	if got := d.GregorianString(); got != "2025-06-21" {
		t.Errorf("GregorianString() = %q, want %q", got, "2025-06-21")
	}
	if got := d.String(); got != "25M03" {
		t.Errorf("String() = %q, want %q", got, "25M03")
	}

	// Leap status follows the offset year: 2000 is leap, 1900 is not.
	if _, err := ParseArvelie("00+01", WithYearOffset(2000)); err != nil {
		t.Errorf("ParseArvelie(00+01, 2000) error = %v", err)
	}
	if _, err := ParseArvelie("00+01", WithYearOffset(1900)); !IsParseError(err) {
		t.Errorf("ParseArvelie(00+01, 1900) error = %v, want ErrParse", err)
	}
	if _, err := ParseArvelie("99A00", WithYearOffset(9901)); !IsParseError(err) {
		t.Errorf("ParseArvelie(99A00, 9901) error = %v, want ErrParse", err)
	}
}

func TestParseArvelie_RejectsPartialCentury(t *testing.T) {
	for _, offset := range []int{5, 50, 1950, 2001, 9999} {
		for _, s := range []string{"25M03", "60A00", "00+00"} {
			_, err := ParseArvelie(s, WithYearOffset(offset))
			if !IsParseError(err) || !IsRangeError(err) {
				t.Errorf("ParseArvelie(%q, %d) error = %v, want ErrParse and ErrRange", s, offset, err)
			}
		}
	}
}

func TestValidateYearOffset(t *testing.T) {
	tests := []struct {
		offset int
		valid  bool
	}{
		{0, true},
		{100, true},
		{1900, true},
		{2000, true},
		{MaxYearOffset, true},
		{-100, false},
		{5, false},
		{99, false},
		{1950, false},
		{2025, false},
		{MaxYearOffset + 100, false},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.offset), func(t *testing.T) {
			err := ValidateYearOffset(tt.offset)
			if tt.valid && err != nil {
				t.Errorf("ValidateYearOffset(%d) error = %v", tt.offset, err)
			}
			if !tt.valid && !IsRangeError(err) {
				t.Errorf("ValidateYearOffset(%d) error = %v, want ErrRange", tt.offset, err)
			}
		})
	}
}

func TestParseISO_KeepsRangeError(t *testing.T) {
	for _, s := range []string{"2025-02-29", "2025-02-30", "2025-13-01", "2025-04-31", "2025-01-00"} {
		_, err := Parse(s)
		if !IsParseError(err) {
			t.Errorf("Parse(%q) error = %v, want ErrParse", s, err)
		}
		if !IsRangeError(err) {
			t.Errorf("Parse(%q) error = %v, want ErrRange", s, err)
		}
	}

	// A malformed string never reached the range checks.
	if _, err := Parse("2025-6-21"); IsRangeError(err) {
		t.Errorf("Parse(2025-6-21) error = %v, want no ErrRange", err)
	}
}

func TestParseISO_IgnoresArvelie(t *testing.T) {
	if _, err := ParseISO("25M03"); !IsParseError(err) {
		t.Errorf("ParseISO(25M03) error = %v, want ErrParse", err)
	}
	if _, err := ParseArvelie("2025-06-21"); !IsParseError(err) {
		t.Errorf("ParseArvelie(2025-06-21) error = %v, want ErrParse", err)
	}
}

func TestNew(t *testing.T) {
	fixed := time.Date(2025, time.June, 21, 23, 30, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"no input uses clock", nil, "25M03"},
		{"time value", fixed, "25M03"},
		{"gregorian value", GregorianDate{Year: 2025, Month: time.June, Day: 21}, "25M03"},
		{"iso string", "2025-06-21", "25M03"},
		{"arvelie string", "25M03", "25M03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.input, WithClock(clock), WithYearOffset(2000))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if d.Year() != 2025 {
				t.Errorf("Year() = %d, want 2025", d.Year())
			}
		})
	}
}

func TestNew_UnsupportedType(t *testing.T) {
	if _, err := New(42); !IsParseError(err) {
		t.Errorf("New(42) error = %v, want ErrParse", err)
	}
}

func TestFromTime_UsesLocation(t *testing.T) {
	// 23:30 UTC on Dec 31 is already Jan 1 in Tokyo.
	utc := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)

	d, err := FromTime(utc)
	if err != nil {
		t.Fatalf("FromTime() error = %v", err)
	}
	if got := d.String(); got != "24+01" {
		t.Errorf("UTC String() = %q, want %q", got, "24+01")
	}

	d, err = FromTime(utc.In(tokyo))
	if err != nil {
		t.Fatalf("FromTime() error = %v", err)
	}
	if got := d.String(); got != "25A00" {
		t.Errorf("Tokyo String() = %q, want %q", got, "25A00")
	}
}

func TestFromGregorian_Range(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{-1, time.January, 1},
		{10000, time.January, 1},
		{2025, 0, 1},
		{2025, 13, 1},
		{2025, time.February, 29},
		{2025, time.January, 0},
		{2025, time.January, 32},
	}

	for _, tt := range tests {
		_, err := FromGregorian(tt.year, tt.month, tt.day)
		if !errors.Is(err, ErrRange) {
			t.Errorf("FromGregorian(%d, %d, %d) error = %v, want ErrRange", tt.year, tt.month, tt.day, err)
		}
	}
}
