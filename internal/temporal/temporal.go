// Package temporal turns the date and timestamp spellings found in
// attendance exports into calendar dates and instants. Instants are
// naive local-clock values; no timezone conversion happens anywhere in
// the pipeline.
package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateKeyLayout = "2006-01-02"

var (
	slashDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	spaceDatePattern = regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2})\s+(\d{4})$`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

	// M D YYYY h:mm[:ss] [AM|PM] with slash or space separators. Exports
	// from the reporting tool write month first in timestamps even when
	// their date column does not.
	timestampPattern = regexp.MustCompile(`(?i)(\d{1,2})[\s/]+(\d{1,2})[\s/]+(\d{4})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)?`)

	clockPattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// fallbackLayouts is tried in order when the timestamp pattern does not
// match. Most of these show up in hand-edited files.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02",
	"1/2/2006",
	time.RFC3339,
}

// resolveDayMonth owns the ambiguous-date heuristic: a field over 12
// can only be a day; when neither field disambiguates, US month-first
// order wins. Callers never apply the rule themselves.
func resolveDayMonth(first, second int) (month, day int) {
	switch {
	case first > 12:
		return second, first
	case second > 12:
		return first, second
	default:
		return first, second
	}
}

// ParseDate converts a date string of any recognized shape to the
// canonical YYYY-MM-DD key. Unrecognized input is returned trimmed and
// unchanged: an unparseable date still has to work as a column key, so
// garbled keys are preferable to dropped cells.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)

	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		return dateKey(m[3], m[1], m[2])
	}
	if m := spaceDatePattern.FindStringSubmatch(s); m != nil {
		return dateKey(m[3], m[1], m[2])
	}
	if isoDatePattern.MatchString(s) {
		return s[:10]
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateKeyLayout)
		}
	}
	return s
}

func dateKey(year, first, second string) string {
	f, _ := strconv.Atoi(first)
	sec, _ := strconv.Atoi(second)
	month, day := resolveDayMonth(f, sec)
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// ParseTimestamp parses a free-form login/logout value into a naive
// instant. Returns nil when nothing parses; the classifier treats a nil
// instant as missing data, never as an error.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := timestampPattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		second := 0
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
		hour = to24Hour(hour, m[7])
		t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
		return &t
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// to24Hour applies an AM/PM marker when present. Without a marker the
// hour field is taken as already 24-hour.
func to24Hour(hour int, ampm string) int {
	switch strings.ToUpper(ampm) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}

// ClockTime is a time of day with minute resolution, detached from any
// calendar date. Schedule shift starts are ClockTimes.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses the schedule file's "h:mm AM|PM" shift-start
// spelling.
func ParseClockTime(s string) (ClockTime, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime{Hour: to24Hour(hour, m[3]), Minute: minute}, nil
}

// String renders the ClockTime back in the schedule file's spelling.
func (c ClockTime) String() string {
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	ampm := "AM"
	if c.Hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, ampm)
}

// IsMidnight reports whether the clock time is exactly 00:00, which the
// lateness computation treats as a shift that may belong to either of
// two calendar days.
func (c ClockTime) IsMidnight() bool {
	return c.Hour == 0 && c.Minute == 0
}
