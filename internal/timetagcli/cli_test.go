package timetagcli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip-england/timetag/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecuteUsageErrors(t *testing.T) {
	assert.ErrorIs(t, Execute(nil), ErrUsage)
	assert.ErrorIs(t, Execute([]string{"bogus"}), ErrUsage)
	assert.ErrorIs(t, Execute([]string{"stats"}), ErrUsage)
}

func TestProcessEndToEnd(t *testing.T) {
	dir := t.TempDir()
	schedPath := writeFile(t, dir, "sched.csv",
		"Engineer,ShiftStart,UsRd,MlaRd\nJose Dela Cruz,9:00 PM,Sat/Sun,Sun\n")
	dataPath := writeFile(t, dir, "report.csv",
		"Date,Agent,First Logged in Time Local,Last Logged out Time Local\n"+
			"11/17/2025,DELA CRUZ JOSE,11/17/2025 9:05 PM,11/18/2025 6:05 AM\n")
	snapPath := filepath.Join(dir, "snap.json.xz")
	outPath := filepath.Join(dir, "report-out.csv")

	err := Execute([]string{"process",
		"--schedule", schedPath,
		"--snapshot", snapPath,
		"--out", outPath,
		"--config", filepath.Join(dir, "absent.yaml"),
		dataPath,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Engineer,11/17/2025", lines[0])
	assert.Equal(t, "JOSE DELA CRUZ,5", lines[1])

	// The snapshot captured both the table and the schedule.
	st, entries, err := store.LoadSnapshot(snapPath)
	require.NoError(t, err)
	require.Len(t, st.Engineers(), 1)
	require.Len(t, entries, 1)
	assert.Equal(t, 21, entries[0].ShiftStart.Hour)
}

func TestProcessRequiresSchedules(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeFile(t, dir, "a.csv", "Name,Date,Status\nJose,2025-11-17,IN\n")

	err := Execute([]string{"process", "--config", filepath.Join(dir, "absent.yaml"), dataPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no engineer schedules")
}

func TestProcessReportsFailedFiles(t *testing.T) {
	dir := t.TempDir()
	schedPath := writeFile(t, dir, "sched.csv",
		"Engineer,ShiftStart,UsRd,MlaRd\nJose,9:00 PM,Sat,Sun\n")
	badPath := writeFile(t, dir, "bad.json", "{broken")
	goodPath := writeFile(t, dir, "good.csv", "Name,Date,Status\nJose,2025-11-17,IN\n")
	outPath := filepath.Join(dir, "out.csv")

	err := Execute([]string{"process",
		"--schedule", schedPath,
		"--out", outPath,
		"--config", filepath.Join(dir, "absent.yaml"),
		badPath, goodPath,
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUsage))
	assert.Contains(t, err.Error(), "1 of 2 files failed")

	// The good file still landed.
	out, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(out), "JOSE")
}
