package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip-england/timetag/internal/classify"
	"github.com/phillip-england/timetag/internal/schedule"
	"github.com/phillip-england/timetag/internal/temporal"
)

func TestResolveMatchesNameVariants(t *testing.T) {
	s := New()
	a := s.Resolve("Jose Dela Cruz")
	b := s.Resolve("DELA CRUZ, JOSE")
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "JOSE DELA CRUZ", a.Name)
	assert.Len(t, s.Engineers(), 1)
}

func TestResolveCreatesDistinctEngineers(t *testing.T) {
	s := New()
	a := s.Resolve("JOHN SMITH")
	b := s.Resolve("JOHN SMITH JR")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.Engineers(), 2)
}

func TestSetComputedLastWriteWins(t *testing.T) {
	s := New()
	e := s.Resolve("Jose")
	s.SetComputed(e.ID, "2025-11-17", Record{Status: classify.Status{Kind: classify.Present}})
	s.SetComputed(e.ID, "2025-11-17", Record{Status: classify.Status{Kind: classify.Late, Minutes: 5}})

	rec, ok := s.Get(e.ID, "2025-11-17")
	require.True(t, ok)
	assert.Equal(t, classify.Status{Kind: classify.Late, Minutes: 5}, rec.Status)
	assert.Equal(t, OriginComputed, rec.Origin)
}

func TestOverrideSurvivesLaterParse(t *testing.T) {
	s := New()
	e := s.Resolve("Jose")
	s.SetComputed(e.ID, "2025-11-17", Record{Status: classify.Status{Kind: classify.Present}})
	s.Override(e.ID, "2025-11-17", classify.Status{Kind: classify.Sick})
	s.SetComputed(e.ID, "2025-11-17", Record{Status: classify.Status{Kind: classify.Late, Minutes: 30}})

	rec, ok := s.Get(e.ID, "2025-11-17")
	require.True(t, ok)
	assert.Equal(t, classify.Status{Kind: classify.Sick}, rec.Status)
	assert.Equal(t, OriginManual, rec.Origin)
}

func TestOverrideReplacesOverride(t *testing.T) {
	s := New()
	e := s.Resolve("Jose")
	s.Override(e.ID, "2025-11-17", classify.Status{Kind: classify.Sick})
	s.Override(e.ID, "2025-11-17", classify.Status{Kind: classify.Vacation})

	rec, _ := s.Get(e.ID, "2025-11-17")
	assert.Equal(t, classify.Status{Kind: classify.Vacation}, rec.Status)
}

func TestDateKeysSorted(t *testing.T) {
	s := New()
	e := s.Resolve("Jose")
	s.SetComputed(e.ID, "2025-11-18", Record{})
	s.SetComputed(e.ID, "2025-11-17", Record{})
	assert.Equal(t, []string{"2025-11-17", "2025-11-18"}, s.DateKeys())
}

func TestSummarize(t *testing.T) {
	s := New()
	a := s.Resolve("A One")
	b := s.Resolve("B Two")
	s.SetComputed(a.ID, "2025-11-17", Record{Status: classify.Status{Kind: classify.Present}})
	s.SetComputed(a.ID, "2025-11-18", Record{Status: classify.Status{Kind: classify.Late, Minutes: 5}})
	s.SetComputed(b.ID, "2025-11-17", Record{Status: classify.Status{Kind: classify.Sick}})
	s.Override(b.ID, "2025-11-18", classify.Status{Kind: classify.Vacation})

	sum := s.Summarize("2025-11-17", "2025-11-18")
	want := Summary{TotalDays: 4, Present: 1, Late: 1, Sick: 1, Vacation: 1}
	if diff := cmp.Diff(want, sum); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDateRange(t *testing.T) {
	assert.Equal(t,
		[]string{"2025-11-17", "2025-11-18", "2025-11-19"},
		DateRange("2025-11-17", "2025-11-19"))
	assert.Equal(t, []string{"2025-11-17"}, DateRange("2025-11-17", "2025-11-17"))
	assert.Equal(t, []string{"junk", "2025-11-19"}, DateRange("junk", "2025-11-19"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, name := range []string{"snap.json", "snap.json.xz"} {
		t.Run(name, func(t *testing.T) {
			s := New()
			e := s.Resolve("Jose Dela Cruz")
			s.SetComputed(e.ID, "2025-11-17", Record{
				Status: classify.Status{Kind: classify.Late, Minutes: 12},
				Login:  "11/17/2025 9:12 PM",
			})
			s.Override(e.ID, "2025-11-18", classify.Status{Kind: classify.Sick})

			dir := schedule.NewDirectory()
			dir.Load([]schedule.Entry{{
				Name:       "Jose Dela Cruz",
				ShiftStart: temporal.ClockTime{Hour: 21},
				RestDaysA:  schedule.ParseWeekdaySet("Sat/Sun"),
				RestDaysB:  schedule.ParseWeekdaySet("Sun"),
			}})

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, s.SaveSnapshot(path, dir))

			restored, entries, err := LoadSnapshot(path)
			require.NoError(t, err)

			rec, ok := restored.Get(e.ID, "2025-11-17")
			require.True(t, ok)
			assert.Equal(t, classify.Status{Kind: classify.Late, Minutes: 12}, rec.Status)
			assert.Equal(t, "11/17/2025 9:12 PM", rec.Login)

			rec, ok = restored.Get(e.ID, "2025-11-18")
			require.True(t, ok)
			assert.Equal(t, OriginManual, rec.Origin)

			require.Len(t, entries, 1)
			assert.Equal(t, temporal.ClockTime{Hour: 21}, entries[0].ShiftStart)
			assert.True(t, entries[0].RestDaysA[time.Saturday])
		})
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
