package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jadwalku/internal/models"
	"jadwalku/internal/sheets"
)

// Sheet titles and fixed cell ranges of the source spreadsheet.
const (
	sheetSetup     = "Setup"
	sheetHolidays  = "Daftar Libur"
	sheetPeriods   = "Daftar Jam"
	sheetClasses   = "Daftar Kelas"
	sheetTeachers  = "Daftar Guru"
	sheetSubjects  = "Daftar Mata Pelajaran"
	sheetEvents    = "Daftar Kegiatan"
	sheetMain      = "Jadwal Utama"
	sheetTemporary = "Jadwal Sementara"
)

// TableFetcher fetches one raw spreadsheet range.
type TableFetcher interface {
	FetchTable(ctx context.Context, spreadsheetID, sheetTitle, cellRange string) ([][]string, error)
}

// Loader orchestrates a full schedule retrieval: setup sheet, two
// concurrent fetch phases, then the builder. The store is rebuilt on every
// call; the loader keeps no state between requests.
type Loader struct {
	fetcher TableFetcher
	baseURL string
	log     *zerolog.Logger
}

// NewLoader creates a loader. baseURL is the setup spreadsheet URL; the
// schedule spreadsheet is discovered from the setup sheet itself.
func NewLoader(fetcher TableFetcher, baseURL string, log *zerolog.Logger) *Loader {
	return &Loader{fetcher: fetcher, baseURL: baseURL, log: log}
}

// Load fetches and builds the full schedule document. now anchors the
// holiday retention window.
func (l *Loader) Load(ctx context.Context, now time.Time) (*models.ScheduleData, error) {
	ws := NewWeekSet(now)

	setupID := sheets.ExtractSpreadsheetID(l.baseURL)
	setup, err := l.fetcher.FetchTable(ctx, setupID, sheetSetup, "B6:D6")
	if err != nil {
		return nil, fmt.Errorf("fetch setup: %w", err)
	}
	if len(setup) < 1 || len(setup[0]) < 3 {
		return nil, fmt.Errorf("setup sheet: expected year, semester and schedule URL")
	}
	semester := models.AcademicSemester{Year: setup[0][0], Semester: setup[0][1]}
	driveID := sheets.ExtractSpreadsheetID(setup[0][2])

	var raw RawTables

	// First phase: the six independent lookup tables plus holidays.
	g, gctx := errgroup.WithContext(ctx)
	l.fetchInto(g, gctx, &raw.Holidays, driveID, sheetHolidays, "B5:C")
	l.fetchInto(g, gctx, &raw.ClassSessions, driveID, sheetPeriods, "B5:C")
	l.fetchInto(g, gctx, &raw.BreakTimes, driveID, sheetPeriods, "E5:F")
	l.fetchInto(g, gctx, &raw.Classes, driveID, sheetClasses, "B5:B")
	l.fetchInto(g, gctx, &raw.Teachers, driveID, sheetTeachers, "B5:C")
	l.fetchInto(g, gctx, &raw.Subjects, driveID, sheetSubjects, "B5:C")
	l.fetchInto(g, gctx, &raw.Events, driveID, sheetEvents, "B5:D")
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Second phase depends on the first: the grid extents follow from the
	// class and teaching-period counts.
	lastColumn := columnName(len(raw.Classes) + 3)
	rows := len(raw.ClassSessions) * 5
	g, gctx = errgroup.WithContext(ctx)
	l.fetchInto(g, gctx, &raw.MainSchedule, driveID, sheetMain, fmt.Sprintf("A5:%s%d", lastColumn, rows+5))
	l.fetchInto(g, gctx, &raw.TemporarySchedule, driveID, sheetTemporary, fmt.Sprintf("A7:%s%d", lastColumn, rows+7))
	l.fetchInto(g, gctx, &raw.TemporaryPeriod, driveID, sheetTemporary, "C3:C4")
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data, err := NewBuilder(l.log).Build(raw, ws.FetchWindow())
	if err != nil {
		return nil, err
	}
	data.AcademicSemester = semester
	return data, nil
}

func (l *Loader) fetchInto(g *errgroup.Group, ctx context.Context, dst *[][]string, id, title, cellRange string) {
	g.Go(func() error {
		rows, err := l.fetcher.FetchTable(ctx, id, title, cellRange)
		if err != nil {
			return fmt.Errorf("fetch %s!%s: %w", title, cellRange, err)
		}
		*dst = rows
		return nil
	})
}

// columnName converts a 1-based column number to its A1 letter form.
func columnName(n int) string {
	name := ""
	for n > 0 {
		name = string(rune('A'+(n-1)%26)) + name
		n = (n - 1) / 26
	}
	return name
}
