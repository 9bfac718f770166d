// Package pipeline wires the parsing, identity, temporal, and
// classification stages into the batch transformation collaborators
// call: raw file bytes in, attendance table updated.
package pipeline

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/phillip-england/timetag/internal/classify"
	"github.com/phillip-england/timetag/internal/dialect"
	"github.com/phillip-england/timetag/internal/schedule"
	"github.com/phillip-england/timetag/internal/store"
	"github.com/phillip-england/timetag/internal/temporal"
)

// File is one input: already-materialized bytes plus the name used as a
// dialect routing hint.
type File struct {
	Name string
	Data []byte
}

// FileReport summarizes one file's processing. Err is set for
// unrecoverable per-file failures; row-level problems only count
// toward Skipped.
type FileReport struct {
	Filename string
	Dialect  dialect.Kind
	Records  int
	Skipped  int
	Err      error
}

// Processor runs the ingestion pipeline against one store and one
// schedule directory. The directory is read-only to the processor.
type Processor struct {
	store      *store.Store
	classifier *classify.Classifier
	log        *zap.Logger
}

// New builds a processor. A nil logger disables logging.
func New(s *store.Store, dir *schedule.Directory, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		store:      s,
		classifier: classify.NewClassifier(dir),
		log:        log,
	}
}

// SetFullShiftMinutes adjusts the classifier's full-shift threshold.
func (p *Processor) SetFullShiftMinutes(minutes int) {
	p.classifier.SetFullShiftMinutes(minutes)
}

// ProcessBatch processes files in the given order; later files
// overwrite earlier ones for the same engineer-day. A file that fails
// outright is reported and the batch continues.
func (p *Processor) ProcessBatch(files []File) []FileReport {
	reports := make([]FileReport, 0, len(files))
	for _, f := range files {
		reports = append(reports, p.ProcessFile(f.Data, f.Name))
	}
	return reports
}

// ProcessFile parses one file and writes its records into the store.
func (p *Processor) ProcessFile(data []byte, filename string) FileReport {
	report := FileReport{Filename: filename}

	result, err := dialect.Parse(data, filename)
	if err != nil {
		report.Err = err
		p.log.Warn("file rejected", zap.String("file", filename), zap.Error(err))
		return report
	}
	report.Dialect = result.Kind

	for _, rec := range result.Records {
		if p.ingest(rec) {
			report.Records++
		} else {
			report.Skipped++
			p.log.Debug("row skipped",
				zap.String("file", filename),
				zap.String("name", rec.Name),
				zap.String("date", rec.Date),
				zap.String("status", rec.Status))
		}
	}

	p.log.Info("file processed",
		zap.String("file", filename),
		zap.Stringer("dialect", result.Kind),
		zap.Int("records", report.Records),
		zap.Int("skipped", report.Skipped))
	return report
}

// spanObserved reports whether a row names both a login and a logout
// value. Such a row is judged on those two fields alone: its duration
// column is never consulted, so garbled instants read as no
// observation rather than silently borrowing the precomputed total.
func spanObserved(rec dialect.RawRecord) bool {
	return rec.Login != "" && rec.Logout != ""
}

// ingest writes one raw record into the store; false means the row was
// dropped (empty identity or an unrecognized status value).
func (p *Processor) ingest(rec dialect.RawRecord) bool {
	if rec.Name == "" || rec.Date == "" {
		return false
	}

	engineer := p.store.Resolve(rec.Name)
	dateKey := temporal.ParseDate(rec.Date)

	if rec.Timed() {
		login := temporal.ParseTimestamp(rec.Login)
		var logout *time.Time
		var durationHours *float64
		if spanObserved(rec) {
			logout = temporal.ParseTimestamp(rec.Logout)
		} else if rec.Duration != "" {
			if hours, err := strconv.ParseFloat(rec.Duration, 64); err == nil {
				durationHours = &hours
			}
		}

		status := p.classifier.Classify(rec.Name, login, logout, durationHours)
		p.store.SetComputed(engineer.ID, dateKey, store.Record{
			Status:   status,
			Login:    rec.Login,
			Logout:   rec.Logout,
			Duration: rec.Duration,
		})
		return true
	}

	status, ok := classify.ParseManual(rec.Status)
	if !ok {
		return false
	}
	p.store.SetComputed(engineer.ID, dateKey, store.Record{Status: status})
	return true
}
