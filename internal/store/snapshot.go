package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/phillip-england/timetag/internal/schedule"
	"github.com/phillip-england/timetag/internal/temporal"
)

// snapshot is the on-disk document: the same shape the attendance table
// holds in memory, plus the schedule table so one file restores a whole
// session.
type snapshot struct {
	Engineers []*Engineer                  `json:"engineers"`
	Records   map[string]map[string]Record `json:"records"`
	Schedules []scheduleEntry              `json:"schedules,omitempty"`
}

// scheduleEntry flattens schedule.Entry into the schedule file's own
// spellings so snapshots stay readable and stable.
type scheduleEntry struct {
	Engineer   string `json:"engineer"`
	ShiftStart string `json:"shiftStart"`
	RestDaysA  string `json:"restDaysA"`
	RestDaysB  string `json:"restDaysB"`
}

// SaveSnapshot writes the store and schedule directory to path as a
// JSON document; a .xz suffix selects xz compression.
func (s *Store) SaveSnapshot(path string, dir *schedule.Directory) error {
	s.mu.RLock()
	doc := snapshot{
		Engineers: s.engineers,
		Records:   s.records,
	}
	if dir != nil {
		for _, e := range dir.Entries() {
			doc.Schedules = append(doc.Schedules, scheduleEntry{
				Engineer:   e.Name,
				ShiftStart: e.ShiftStart.String(),
				RestDaysA:  e.RestDaysA.String(),
				RestDaysB:  e.RestDaysB.String(),
			})
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if compressed(path) {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot restores a store and the saved schedule entries from a
// snapshot file written by SaveSnapshot.
func LoadSnapshot(path string) (*Store, []schedule.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	if compressed(path) {
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("decompress snapshot %s: %w", path, err)
		}
		if data, err = io.ReadAll(r); err != nil {
			return nil, nil, fmt.Errorf("decompress snapshot %s: %w", path, err)
		}
	}

	var doc snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	s := New()
	s.engineers = doc.Engineers
	if doc.Records != nil {
		s.records = doc.Records
	}

	var entries []schedule.Entry
	for _, se := range doc.Schedules {
		start, err := temporal.ParseClockTime(se.ShiftStart)
		if err != nil {
			continue
		}
		entries = append(entries, schedule.Entry{
			Name:       se.Engineer,
			ShiftStart: start,
			RestDaysA:  schedule.ParseWeekdaySet(se.RestDaysA),
			RestDaysB:  schedule.ParseWeekdaySet(se.RestDaysB),
		})
	}
	return s, entries, nil
}

func compressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xz")
}
