// Package dialect decomposes raw attendance files into (name, date,
// field-values) tuples. Four textual shapes are recognized: a JSON map,
// a simple name/date/status CSV, a login/logout CSV, and loose
// "name : date = value" text. Spreadsheets (.xlsx/.xls) are flattened
// to rows and routed through the same CSV logic.
package dialect

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind is the closed set of recognized file shapes. CSV sub-kinds are
// chosen by DetectCSVKind over the header row, never by extension.
type Kind int

const (
	KindJSON Kind = iota
	KindSimpleCSV
	KindLoginLogoutCSV
	KindLooseText
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindSimpleCSV:
		return "simple-csv"
	case KindLoginLogoutCSV:
		return "login-logout-csv"
	case KindLooseText:
		return "loose-text"
	default:
		return "unknown"
	}
}

// RawRecord is one decomposed row. Date is carried as found in the
// file; the pipeline normalizes it. Exactly one of Status or the
// Login/Logout/Duration triple is populated, depending on the dialect.
type RawRecord struct {
	Name     string
	Date     string
	Status   string
	Login    string
	Logout   string
	Duration string
}

// Timed reports whether the record carries login/logout observations
// (or a precomputed duration) rather than a ready-made status.
func (r RawRecord) Timed() bool {
	return r.Login != "" || r.Logout != "" || r.Duration != ""
}

// Result is a parsed file plus the dialect that produced it.
type Result struct {
	Kind    Kind
	Records []RawRecord
}

var loosePattern = regexp.MustCompile(`(.+?):\s*(.+?)\s*=\s*(.+)`)

// Parse decomposes file bytes. The filename extension is only a routing
// hint (JSON vs spreadsheet vs text); CSV sub-dialect detection is
// content-based. A file that fails its declared structure (bad JSON,
// unreadable workbook) is rejected whole; malformed rows inside an
// otherwise readable file are skipped.
func Parse(data []byte, filename string) (Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		records, err := parseJSON(data)
		if err != nil {
			return Result{}, fmt.Errorf("parse %s: %w", filename, err)
		}
		return Result{Kind: KindJSON, Records: records}, nil
	case ".xlsx", ".xls":
		rows, err := readSpreadsheetRows(data, filename)
		if err != nil {
			return Result{}, fmt.Errorf("parse %s: %w", filename, err)
		}
		return parseRows(rows), nil
	case ".csv":
		return parseRows(decodeLines(data)), nil
	default:
		return Result{Kind: KindLooseText, Records: parseLooseText(Decode(data))}, nil
	}
}

// parseJSON flattens {"engineer": {"date": "status"}} into records.
func parseJSON(data []byte) ([]RawRecord, error) {
	var byName map[string]map[string]string
	if err := json.Unmarshal(stripBOM(data), &byName); err != nil {
		return nil, err
	}

	var records []RawRecord
	for name, days := range byName {
		for date, status := range days {
			records = append(records, RawRecord{Name: name, Date: date, Status: status})
		}
	}
	return records, nil
}

// decodeLines decodes the file and splits it into non-empty rows using
// the per-line delimiter priority.
func decodeLines(data []byte) [][]string {
	var rows [][]string
	for _, line := range strings.Split(Decode(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, SplitFields(line))
	}
	return rows
}

// DetectCSVKind classifies a CSV by its header row: any column
// signaling login time, logout time, agent, or duration selects the
// login/logout dialect, otherwise the file is simple three-column rows.
func DetectCSVKind(header []string) Kind {
	for _, h := range header {
		h = strings.ToLower(h)
		if strings.Contains(h, "logged in") ||
			strings.Contains(h, "logged out") ||
			strings.Contains(h, "agent") ||
			strings.Contains(h, "duration") {
			return KindLoginLogoutCSV
		}
	}
	return KindSimpleCSV
}

func parseRows(rows [][]string) Result {
	if len(rows) == 0 {
		return Result{Kind: KindSimpleCSV}
	}

	kind := DetectCSVKind(rows[0])
	if kind == KindLoginLogoutCSV {
		return Result{Kind: kind, Records: parseLoginLogoutRows(rows)}
	}
	return Result{Kind: kind, Records: parseSimpleRows(rows)}
}

// parseSimpleRows handles "name, date, status" rows. The first row is
// assumed to be a header and skipped.
func parseSimpleRows(rows [][]string) []RawRecord {
	var records []RawRecord
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		name := strings.TrimSpace(row[0])
		date := strings.TrimSpace(row[1])
		status := strings.ToUpper(strings.TrimSpace(row[2]))
		if name == "" || date == "" || status == "" {
			continue
		}
		records = append(records, RawRecord{Name: name, Date: date, Status: status})
	}
	return records
}

var plainDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// Reporting tools emit month banners between day blocks, and the
// exports at hand only ever carry the winter months. Matching just
// those keeps real names like "June Smith" or "Maya" in the data.
var bannerMonths = []string{"november", "december", "january"}

// spuriousAgent reports whether an "agent" cell is really a repeated
// header or a section banner (a date, a banner month, a header
// keyword) rather than a person.
func spuriousAgent(value string) bool {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)
	if strings.Contains(lower, "date") || strings.Contains(lower, "agent") {
		return true
	}
	for _, month := range bannerMonths {
		if strings.Contains(lower, month) {
			return true
		}
	}
	return plainDatePattern.MatchString(value)
}

func headerIndex(header []string, token string) int {
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), token) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseLoginLogoutRows handles the reporting-tool export: Date, Agent,
// First Logged in Time, Last Logged out Time, Total Duration (hrs).
func parseLoginLogoutRows(rows [][]string) []RawRecord {
	header := rows[0]
	dateIdx := headerIndex(header, "date")
	agentIdx := headerIndex(header, "agent")
	loginIdx := headerIndex(header, "logged in")
	logoutIdx := headerIndex(header, "logged out")
	durationIdx := headerIndex(header, "duration")

	var records []RawRecord
	for _, row := range rows[1:] {
		name := cell(row, agentIdx)
		date := cell(row, dateIdx)
		if name == "" || date == "" {
			continue
		}
		if spuriousAgent(name) {
			continue
		}
		records = append(records, RawRecord{
			Name:     name,
			Date:     date,
			Login:    cell(row, loginIdx),
			Logout:   cell(row, logoutIdx),
			Duration: cell(row, durationIdx),
		})
	}
	return records
}

// parseLooseText handles "name : date = value" lines. Lines that do not
// match the pattern are skipped; partial files are expected.
func parseLooseText(content string) []RawRecord {
	var records []RawRecord
	for _, line := range strings.Split(content, "\n") {
		m := loosePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, RawRecord{
			Name:   strings.TrimSpace(m[1]),
			Date:   strings.TrimSpace(m[2]),
			Status: strings.ToUpper(strings.TrimSpace(m[3])),
		})
	}
	return records
}

// SplitFields splits one row into fields, deciding the delimiter per
// line: tab wins, then comma (with quoted fields containing commas),
// then runs of two or more spaces (common when rows are copied out of a
// formatted display).
func SplitFields(line string) []string {
	line = strings.TrimRight(line, "\r")

	if strings.Contains(line, "\t") {
		fields := strings.Split(line, "\t")
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}
		return fields
	}

	if strings.Contains(line, ",") {
		var fields []string
		var current strings.Builder
		inQuotes := false
		for _, r := range line {
			switch {
			case r == '"':
				inQuotes = !inQuotes
			case r == ',' && !inQuotes:
				fields = append(fields, strings.TrimSpace(current.String()))
				current.Reset()
			default:
				current.WriteRune(r)
			}
		}
		fields = append(fields, strings.TrimSpace(current.String()))
		return fields
	}

	var fields []string
	for _, f := range multiSpacePattern.Split(line, -1) {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

var multiSpacePattern = regexp.MustCompile(`\s{2,}`)
