package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/arvelie/internal/arvelie"
	"github.com/zapponejosh/arvelie/internal/view"
)

var fixedNow = time.Date(2025, time.June, 21, 20, 30, 0, 0, time.UTC)

// execute runs the command tree against a fixed clock and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out, func() time.Time { return fixedNow })
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert_Text(t *testing.T) {
	out, err := execute(t, "convert", "2025-06-21", "24+01", "25+00")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-21  25M03\n2024-12-31  24+01\n2025-12-31  25+00\n", out)
}

func TestConvert_JSON(t *testing.T) {
	out, err := execute(t, "convert", "25M03", "--output", "json")
	require.NoError(t, err)

	var d view.Date
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "2025-06-21", d.ISO)
	assert.Equal(t, 171, d.DayOfYear)
	assert.Equal(t, "M", d.Month)
	assert.Equal(t, 3, d.Day)
}

func TestConvert_YAMLList(t *testing.T) {
	out, err := execute(t, "convert", "25A00", "25Z13", "-o", "yaml")
	require.NoError(t, err)

	var dates []view.Date
	require.NoError(t, yaml.Unmarshal([]byte(out), &dates))
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-01-01", dates[0].ISO)
	assert.Equal(t, "2025-12-30", dates[1].ISO)
}

func TestConvert_Offset(t *testing.T) {
	out, err := execute(t, "convert", "25M03", "--offset", "1900")
	require.NoError(t, err)
	assert.Equal(t, "1925-06-21  25M03\n", out)
}

func TestConvert_Errors(t *testing.T) {
	_, err := execute(t, "convert", "not-a-date")
	assert.True(t, arvelie.IsParseError(err))

	_, err = execute(t, "convert")
	assert.Error(t, err)

	_, err = execute(t, "convert", "25M03", "--output", "xml")
	assert.ErrorContains(t, err, "--output")

	for _, offset := range []string{"-5", "5", "1950", "10000"} {
		_, err = execute(t, "convert", "25M03", "--offset", offset)
		assert.ErrorContains(t, err, "--offset", "offset %s", offset)
	}
}

func TestToday(t *testing.T) {
	out, err := execute(t, "today")
	require.NoError(t, err)
	assert.Equal(t, "25M03  2025-06-21  summer evening\n", out)
}

func TestToday_TimeZone(t *testing.T) {
	// 20:30 UTC is already the next day in Tokyo.
	out, err := execute(t, "today", "--tz", "Asia/Tokyo", "-o", "json")
	require.NoError(t, err)

	var today view.Today
	require.NoError(t, json.Unmarshal([]byte(out), &today))
	assert.Equal(t, "2025-06-22", today.Date.ISO)
	assert.Equal(t, "25M04", today.Date.Arvelie)
	assert.Equal(t, 5, today.Season.Hour)

	_, err = execute(t, "today", "--tz", "Mars/Olympus")
	assert.Error(t, err)
}

func TestSeason(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"season"}, "summer evening"},
		{[]string{"season", "2025-07-04", "--hour", "20"}, "autumn night"},
		{[]string{"season", "2025-01-15", "--hour", "12", "--traditional=false"}, "spring day"},
		{[]string{"season", "25M03", "--hour", "20", "--names=false"}, "1 3"},
		{[]string{"season", "--hour", "0"}, "summer night"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestSeason_Errors(t *testing.T) {
	_, err := execute(t, "season", "--hour", "24")
	assert.Error(t, err)

	_, err = execute(t, "season", "99Z99")
	assert.True(t, arvelie.IsParseError(err))

	_, err = execute(t, "season", "2025-01-01", "2025-02-01")
	assert.Error(t, err)
}
