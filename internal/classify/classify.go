// Package classify derives a day's attendance status from observed
// login/logout instants (or a precomputed duration) and the engineer's
// scheduled shift start.
package classify

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/phillip-england/timetag/internal/schedule"
	"github.com/phillip-england/timetag/internal/temporal"
)

// FullShiftMinutes is the default full-shift threshold: nine hours.
const FullShiftMinutes = 540

// maxShiftMinutes is the data sanity ceiling; a computed duration over
// 24 hours means the timestamps are bad, not that someone worked it.
const maxShiftMinutes = 1440

type Kind int

const (
	Empty Kind = iota
	Present
	Late
	Short
	Sick
	Vacation
	Absent
)

// Status is the per-day classification. Minutes is positive for Late
// (minutes past shift start) and Short (minutes below the full-shift
// threshold), zero otherwise. The two never apply to the same day:
// lateness takes priority over shortfall.
type Status struct {
	Kind    Kind
	Minutes int
}

// Render produces the cell text collaborators display and export:
// IN for a full on-time shift, bare minutes for Late and Short, the
// literal leave codes otherwise, empty for no data.
func (s Status) Render() string {
	switch s.Kind {
	case Present:
		return "IN"
	case Late, Short:
		return strconv.Itoa(s.Minutes)
	case Sick:
		return "SICK"
	case Vacation:
		return "VL"
	case Absent:
		return "ABSNT"
	default:
		return ""
	}
}

// ParseManual interprets a status string coming from a simple-dialect
// file or a manual override. A bare positive integer means late by that
// many minutes, which is how manual edit forms record lateness.
// Unrecognized text is rejected so callers skip the row.
func ParseManual(s string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN", "PRESENT":
		return Status{Kind: Present}, true
	case "SICK":
		return Status{Kind: Sick}, true
	case "VL", "VACATION":
		return Status{Kind: Vacation}, true
	case "ABSNT", "ABSENT":
		return Status{Kind: Absent}, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
		return Status{Kind: Late, Minutes: n}, true
	}
	return Status{}, false
}

// Classifier computes statuses against a schedule directory. The
// directory is consulted, never mutated.
type Classifier struct {
	dir       *schedule.Directory
	threshold float64
}

func NewClassifier(dir *schedule.Directory) *Classifier {
	return &Classifier{dir: dir, threshold: FullShiftMinutes}
}

// SetFullShiftMinutes overrides the nine-hour threshold. Zero or
// negative values are ignored.
func (c *Classifier) SetFullShiftMinutes(minutes int) {
	if minutes > 0 {
		c.threshold = float64(minutes)
	}
}

// Classify derives the status for one engineer-day. A missing schedule
// entry is a hard precondition failure: the result is Empty and no
// lateness or duration math runs. Callers supply one worked-time
// source: both observed instants, or a precomputed duration in hours
// used as-is. With neither, the day stays Empty.
func (c *Classifier) Classify(engineerName string, login, logout *time.Time, durationHours *float64) Status {
	entry, ok := c.dir.Lookup(engineerName)
	if !ok {
		return Status{}
	}

	var worked float64
	switch {
	case login != nil && logout != nil:
		worked = workedMinutes(*login, *logout)
	case durationHours != nil:
		// Already a total; no midnight correction applies.
		worked = *durationHours * 60
	}

	if worked <= 0 {
		return Status{}
	}

	late := latenessMinutes(entry.ShiftStart, login)
	switch {
	case late > 0:
		return Status{Kind: Late, Minutes: late}
	case worked >= c.threshold:
		return Status{Kind: Present}
	default:
		return Status{Kind: Short, Minutes: int(math.Ceil(c.threshold - worked))}
	}
}

// workedMinutes is the observed span in whole minutes. A negative span
// means the logout crossed midnight, so a day is added back; a span
// over 24 hours is a data error and counts as zero.
func workedMinutes(login, logout time.Time) float64 {
	diff := logout.Sub(login).Minutes()
	if diff < 0 {
		diff += 24 * 60
	}
	if diff > maxShiftMinutes {
		return 0
	}
	return math.Max(0, math.Floor(diff))
}

// latenessMinutes is the whole minutes the login trails the expected
// shift start; zero when on time, early, or when the login is missing
// or unparseable.
func latenessMinutes(start temporal.ClockTime, login *time.Time) int {
	if login == nil {
		return 0
	}
	diff := login.Sub(expectedShiftStart(start, *login)).Minutes()
	if diff <= 0 {
		return 0
	}
	return int(math.Floor(diff))
}

// expectedShiftStart places the scheduled time of day on a calendar
// day. Normally that is the login's day. A midnight-hour shift start is
// ambiguous between two days and resolves by the login's half of the
// clock: an afternoon or evening login is an early arrival for the
// next day's midnight; a morning login belongs to a shift that already
// started at the current day's midnight.
func expectedShiftStart(start temporal.ClockTime, login time.Time) time.Time {
	day := login.Day()
	if start.Hour == 0 && login.Hour() >= 12 {
		day++
	}
	return time.Date(login.Year(), login.Month(), day, start.Hour, start.Minute, 0, 0, login.Location())
}
