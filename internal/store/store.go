// Package store owns the in-memory attendance table: engineers keyed
// by resolved identity, and per engineer-day records. The pipeline is
// the only writer of computed statuses; manual overrides come in
// through Override and are never silently reverted.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phillip-england/timetag/internal/classify"
	"github.com/phillip-england/timetag/internal/identity"
	"github.com/phillip-england/timetag/internal/temporal"
)

// Origin tracks who wrote a cell. A parse batch may overwrite computed
// cells but never manual ones.
type Origin int

const (
	OriginComputed Origin = iota
	OriginManual
)

// Engineer is a tracked individual. ID is assigned once on first
// sighting and never reused; Name is the canonical spelling of the
// first variant seen.
type Engineer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Record is one engineer-day cell. The raw observed fields are kept
// verbatim for audit and export alongside the derived status.
type Record struct {
	Status   classify.Status `json:"status"`
	Origin   Origin          `json:"origin"`
	Login    string          `json:"login,omitempty"`
	Logout   string          `json:"logout,omitempty"`
	Duration string          `json:"duration,omitempty"`
}

// Store is the attendance table. Safe for concurrent use; writes to one
// (engineer, date) key serialize, so callers that parallelize across
// files keep last-write-wins determinism as long as they order files.
type Store struct {
	mu        sync.RWMutex
	engineers []*Engineer
	records   map[string]map[string]Record // engineer ID -> date key -> record
}

func New() *Store {
	return &Store{records: make(map[string]map[string]Record)}
}

// Resolve finds the engineer whose name token-matches, creating one on
// first sighting. Parsing never fails on an unknown name.
func (s *Store) Resolve(name string) *Engineer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(name)
}

func (s *Store) resolveLocked(name string) *Engineer {
	for _, e := range s.engineers {
		if identity.Match(e.Name, name) {
			return e
		}
	}
	e := &Engineer{ID: uuid.NewString(), Name: identity.Normalize(name)}
	s.engineers = append(s.engineers, e)
	return e
}

// SetComputed writes a classifier result for a cell. A manual override
// already in place wins over any later parse.
func (s *Store) SetComputed(engineerID, dateKey string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[engineerID][dateKey]; ok && existing.Origin == OriginManual {
		return
	}
	rec.Origin = OriginComputed
	s.setLocked(engineerID, dateKey, rec)
}

// Override replaces a cell with a manually entered status, from any
// prior state. Overrides replace; they never merge with observed data.
func (s *Store) Override(engineerID, dateKey string, status classify.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(engineerID, dateKey, Record{Status: status, Origin: OriginManual})
}

func (s *Store) setLocked(engineerID, dateKey string, rec Record) {
	if s.records[engineerID] == nil {
		s.records[engineerID] = make(map[string]Record)
	}
	s.records[engineerID][dateKey] = rec
}

// Engineers returns all engineers in first-seen order.
func (s *Store) Engineers() []*Engineer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Engineer, len(s.engineers))
	copy(out, s.engineers)
	return out
}

// Get returns the record for one cell.
func (s *Store) Get(engineerID, dateKey string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[engineerID][dateKey]
	return rec, ok
}

// ByEngineer returns every dated record for one engineer, date-sorted.
func (s *Store) ByEngineer(engineerID string) map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Record, len(s.records[engineerID]))
	for k, v := range s.records[engineerID] {
		out[k] = v
	}
	return out
}

// DateKeys returns every date key present in the store, sorted. Keys
// that never parsed to a canonical date sort after the ISO ones.
func (s *Store) DateKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, days := range s.records {
		for k := range days {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summary is the dashboard roll-up over a date range.
type Summary struct {
	TotalDays int
	Present   int
	Late      int
	Short     int
	Sick      int
	Vacation  int
	Absent    int
	Empty     int
}

// Summarize counts statuses for every engineer over [from, to]
// inclusive, both in YYYY-MM-DD form.
func (s *Store) Summarize(from, to string) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for _, day := range DateRange(from, to) {
		for _, e := range s.engineers {
			sum.TotalDays++
			rec := s.records[e.ID][day]
			switch rec.Status.Kind {
			case classify.Present:
				sum.Present++
			case classify.Late:
				sum.Late++
			case classify.Short:
				sum.Short++
			case classify.Sick:
				sum.Sick++
			case classify.Vacation:
				sum.Vacation++
			case classify.Absent:
				sum.Absent++
			default:
				sum.Empty++
			}
		}
	}
	return sum
}

// DateRange expands [from, to] into daily keys. Unparseable bounds
// yield just the bounds themselves.
func DateRange(from, to string) []string {
	start, err1 := time.Parse(temporal.DateKeyLayout, from)
	end, err2 := time.Parse(temporal.DateKeyLayout, to)
	if err1 != nil || err2 != nil || end.Before(start) {
		if from == to {
			return []string{from}
		}
		return []string{from, to}
	}

	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(temporal.DateKeyLayout))
	}
	return keys
}
