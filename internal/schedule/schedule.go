// Package schedule holds the per-engineer shift directory the
// classifier consults. Entries are loaded wholesale from a schedule CSV
// and looked up by token-matched name, never mutated by readers.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/phillip-england/timetag/internal/dialect"
	"github.com/phillip-england/timetag/internal/identity"
	"github.com/phillip-england/timetag/internal/temporal"
)

// WeekdaySet is a set of rest weekdays under one regional calendar.
type WeekdaySet map[time.Weekday]bool

// Entry is one engineer's schedule: the shift-start time of day plus
// two independent rest-day calendars (a US-holiday one and a local one,
// in the source data).
type Entry struct {
	Name       string
	ShiftStart temporal.ClockTime
	RestDaysA  WeekdaySet
	RestDaysB  WeekdaySet
}

// Directory maps engineers to schedule entries. Loading replaces the
// whole table; duplicate names within one load keep the last entry.
type Directory struct {
	entries []Entry
}

func NewDirectory() *Directory {
	return &Directory{}
}

// Load replaces the directory contents. Duplicates (by normalized name)
// collapse to the last occurrence.
func (d *Directory) Load(entries []Entry) {
	byName := make(map[string]int)
	var deduped []Entry
	for _, e := range entries {
		key := identity.Normalize(e.Name)
		if idx, seen := byName[key]; seen {
			deduped[idx] = e
			continue
		}
		byName[key] = len(deduped)
		deduped = append(deduped, e)
	}
	d.entries = deduped
}

// Lookup finds the entry for an engineer by token-matched name. The
// second return is false when no entry matches; callers must treat that
// as "no computation possible", not as a default shift.
func (d *Directory) Lookup(engineerName string) (Entry, bool) {
	for _, e := range d.entries {
		if identity.Match(e.Name, engineerName) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns the loaded table in load order, for rendering and
// snapshots.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Directory) Len() int {
	return len(d.entries)
}

// IsRestDay reports whether the date falls on one of the engineer's
// rest days under either calendar.
func (d *Directory) IsRestDay(engineerName string, date time.Time) bool {
	e, ok := d.Lookup(engineerName)
	if !ok {
		return false
	}
	return e.RestDaysA[date.Weekday()] || e.RestDaysB[date.Weekday()]
}

// ParseCSV reads the schedule input dialect: four columns
// Engineer, ShiftStart, RestDaysA, RestDaysB, shift start spelled
// "h:mm AM|PM". Rows with too few columns or an unparseable shift start
// are skipped.
func ParseCSV(data []byte) ([]Entry, error) {
	content := dialect.Decode(data)
	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty schedule file")
	}

	var entries []Entry
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := dialect.SplitFields(line)
		if len(fields) < 4 {
			continue
		}
		start, err := temporal.ParseClockTime(fields[1])
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:       strings.TrimSpace(fields[0]),
			ShiftStart: start,
			RestDaysA:  ParseWeekdaySet(fields[2]),
			RestDaysB:  ParseWeekdaySet(fields[3]),
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no schedule entries found")
	}
	return entries, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdaySet reads a rest-day cell like "Sat/Sun" or "Mon, Tue".
// Unrecognized tokens are ignored.
func ParseWeekdaySet(s string) WeekdaySet {
	set := make(WeekdaySet)
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == ' ' || r == '-' || r == '&'
	}) {
		if day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(tok))]; ok {
			set[day] = true
		}
	}
	return set
}

// String renders the set in schedule-file spelling, week order.
func (w WeekdaySet) String() string {
	var parts []string
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w[day] {
			parts = append(parts, day.String()[:3])
		}
	}
	return strings.Join(parts, "/")
}
