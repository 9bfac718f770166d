// Package timetagcli is the command-line front end: it loads schedules
// and snapshots, runs attendance files through the pipeline, and writes
// reports.
package timetagcli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/phillip-england/timetag/internal/envutil"
	"github.com/phillip-england/timetag/internal/export"
	"github.com/phillip-england/timetag/internal/pipeline"
	"github.com/phillip-england/timetag/internal/schedule"
	"github.com/phillip-england/timetag/internal/store"
)

var ErrUsage = errors.New("usage")

func Execute(args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	if err := envutil.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	switch args[0] {
	case "process":
		return runProcess(args[1:])
	case "stats":
		return runStats(args[1:])
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: timetag <process|stats> [...]", ErrUsage)
}

// PrintUsage writes the full command synopsis.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: timetag process --schedule <file> [--snapshot <file>] [--out <file>]")
	fmt.Fprintln(w, "                       [--from YYYY-MM-DD --to YYYY-MM-DD] [--config timetag.yaml]")
	fmt.Fprintln(w, "                       [--verbose] <attendance files...>")
	fmt.Fprintln(w, "       timetag stats --snapshot <file> --from YYYY-MM-DD --to YYYY-MM-DD")
}

func runProcess(args []string) error {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	schedulePath := fs.String("schedule", envutil.String("TIMETAG_SCHEDULE", ""), "schedule CSV file")
	snapshotPath := fs.String("snapshot", "", "snapshot file to load before and save after processing")
	outPath := fs.String("out", "", "report destination (.csv or .xlsx); prints a table when omitted")
	from := fs.String("from", "", "report range start (YYYY-MM-DD)")
	to := fs.String("to", "", "report range end (YYYY-MM-DD)")
	configPath := fs.String("config", "timetag.yaml", "optional tuning file")
	verbose := fs.Bool("verbose", false, "log per-file and per-row detail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no attendance files given")
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, err := buildLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, dir, err := loadState(*snapshotPath)
	if err != nil {
		return err
	}

	if *schedulePath != "" {
		data, err := os.ReadFile(*schedulePath)
		if err != nil {
			return fmt.Errorf("read schedule %s: %w", *schedulePath, err)
		}
		entries, err := schedule.ParseCSV(data)
		if err != nil {
			return fmt.Errorf("parse schedule %s: %w", *schedulePath, err)
		}
		dir.Load(entries)
	}
	if dir.Len() == 0 {
		return errors.New("no engineer schedules loaded; provide --schedule before processing attendance data")
	}

	proc := pipeline.New(st, dir, logger)
	proc.SetFullShiftMinutes(cfg.FullShiftMinutes)

	files := make([]pipeline.File, 0, fs.NArg())
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, pipeline.File{Name: filepath.Base(path), Data: data})
	}

	failed := 0
	for _, report := range proc.ProcessBatch(files) {
		if report.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "error: %v\n", report.Err)
		}
	}

	if *snapshotPath != "" {
		if err := st.SaveSnapshot(*snapshotPath, dir); err != nil {
			return err
		}
	}

	table := export.Flatten(st, *from, *to)
	if err := writeReport(table, *outPath); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func writeReport(table export.Table, outPath string) error {
	if outPath == "" {
		fmt.Print(table.String())
		return nil
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		err = table.WriteXLSX(f)
	default:
		err = table.WriteCSV(f)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("write report %s: %w", outPath, err)
	}
	return f.Close()
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	snapshotPath := fs.String("snapshot", "", "snapshot file to read")
	from := fs.String("from", "", "range start (YYYY-MM-DD)")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *snapshotPath == "" || *from == "" || *to == "" {
		return fmt.Errorf("%w: timetag stats --snapshot <file> --from <date> --to <date>", ErrUsage)
	}

	st, _, err := store.LoadSnapshot(*snapshotPath)
	if err != nil {
		return err
	}

	sum := st.Summarize(*from, *to)
	fmt.Printf("days     %d\n", sum.TotalDays)
	fmt.Printf("present  %d\n", sum.Present)
	fmt.Printf("late     %d\n", sum.Late)
	fmt.Printf("short    %d\n", sum.Short)
	fmt.Printf("sick     %d\n", sum.Sick)
	fmt.Printf("vacation %d\n", sum.Vacation)
	fmt.Printf("absent   %d\n", sum.Absent)
	fmt.Printf("no data  %d\n", sum.Empty)
	return nil
}

// loadState restores a snapshot when one is given and exists; otherwise
// it starts empty.
func loadState(snapshotPath string) (*store.Store, *schedule.Directory, error) {
	dir := schedule.NewDirectory()
	if snapshotPath == "" {
		return store.New(), dir, nil
	}
	if _, err := os.Stat(snapshotPath); errors.Is(err, os.ErrNotExist) {
		return store.New(), dir, nil
	}

	st, entries, err := store.LoadSnapshot(snapshotPath)
	if err != nil {
		return nil, nil, err
	}
	dir.Load(entries)
	return st, dir, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		return cfg.Build()
	}
	return zap.NewDevelopment()
}
