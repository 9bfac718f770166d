package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateDisambiguation(t *testing.T) {
	cases := map[string]string{
		"25/12/2025": "2025-12-25", // first field > 12 forces day-first
		"12/25/2025": "2025-12-25", // second field > 12 forces month-first
		"05/06/2025": "2025-05-06", // ambiguous defaults to month-first
		"1/7/2025":   "2025-01-07",
		"13/1/2025":  "2025-01-13",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseDate(in), "input %q", in)
	}
}

func TestParseDateSpaceSeparated(t *testing.T) {
	assert.Equal(t, "2025-12-25", ParseDate("25 12 2025"))
	assert.Equal(t, "2025-12-01", ParseDate("12 1 2025"))
	assert.Equal(t, "2025-05-06", ParseDate(" 5 6 2025 "))
}

func TestParseDateCanonicalPassthrough(t *testing.T) {
	assert.Equal(t, "2025-11-17", ParseDate("2025-11-17"))
	assert.Equal(t, "2025-11-17", ParseDate("2025-11-17T08:00:00"))
}

func TestParseDateUnrecognizedReturnsInput(t *testing.T) {
	assert.Equal(t, "not a date", ParseDate(" not a date "))
}

func TestParseTimestampTwelveHour(t *testing.T) {
	got := ParseTimestamp("12 1 2025 8:50:13 PM")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 1, 20, 50, 13, 0, time.UTC), *got)

	got = ParseTimestamp("12/1/2025 8:50 AM")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 1, 8, 50, 0, 0, time.UTC), *got)
}

func TestParseTimestampNoonAndMidnight(t *testing.T) {
	noon := ParseTimestamp("1/2/2025 12:00 PM")
	require.NotNil(t, noon)
	assert.Equal(t, 12, noon.Hour())

	midnight := ParseTimestamp("1/2/2025 12:00 AM")
	require.NotNil(t, midnight)
	assert.Equal(t, 0, midnight.Hour())
}

func TestParseTimestampTwentyFourHour(t *testing.T) {
	got := ParseTimestamp("12 1 2025 20:50")
	require.NotNil(t, got)
	assert.Equal(t, 20, got.Hour())
	assert.Equal(t, 50, got.Minute())
}

func TestParseTimestampFallbackLayouts(t *testing.T) {
	got := ParseTimestamp("2025-11-17 08:15:00")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 11, 17, 8, 15, 0, 0, time.UTC), *got)
}

func TestParseTimestampUnparseable(t *testing.T) {
	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("yesterday-ish"))
}

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("9:00 PM")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 21, Minute: 0}, c)

	c, err = ParseClockTime("12:00 AM")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 0, Minute: 0}, c)
	assert.True(t, c.IsMidnight())

	c, err = ParseClockTime("12:30 PM")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 12, Minute: 30}, c)

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "9:00 PM", ClockTime{Hour: 21}.String())
	assert.Equal(t, "12:00 AM", ClockTime{Hour: 0}.String())
	assert.Equal(t, "12:15 PM", ClockTime{Hour: 12, Minute: 15}.String())
}
