// Package export flattens the attendance table into the
// engineer-by-date grid collaborators render, and writes it as CSV or
// styled xlsx.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phillip-england/timetag/internal/store"
	"github.com/phillip-england/timetag/internal/temporal"
)

// Table is the flattened grid: one row per engineer, one column per
// date, cell text already rendered. Empty cells carry "-".
type Table struct {
	Header []string   // "Engineer" followed by display dates
	Rows   [][]string // engineer name followed by cell values
}

const emptyCell = "-"

// Flatten builds the grid for [from, to] (YYYY-MM-DD, inclusive).
// Unless both bounds are given, every date key in the store is used.
func Flatten(s *store.Store, from, to string) Table {
	var keys []string
	if from != "" && to != "" {
		keys = store.DateRange(from, to)
	} else {
		keys = s.DateKeys()
	}

	header := make([]string, 0, len(keys)+1)
	header = append(header, "Engineer")
	for _, k := range keys {
		header = append(header, displayDate(k))
	}

	var rows [][]string
	for _, e := range s.Engineers() {
		row := make([]string, 0, len(keys)+1)
		row = append(row, e.Name)
		for _, k := range keys {
			rec, ok := s.Get(e.ID, k)
			text := rec.Status.Render()
			if !ok || text == "" {
				text = emptyCell
			}
			row = append(row, text)
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// displayDate renders a canonical date key as MM/DD/YYYY, the format
// the surrounding reports use; non-canonical keys pass through.
func displayDate(key string) string {
	t, err := time.Parse(temporal.DateKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("01/02/2006")
}

// WriteCSV writes the grid as plain CSV.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// String renders the grid for terminal output, columns padded.
func (t Table) String() string {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(widths) {
				b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		b.WriteString("\n")
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}
