package schedule

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"jadwalku/internal/models"
)

// RawTables carries the raw spreadsheet ranges a schedule build consumes.
// Every table is rows of cell strings exactly as fetched.
type RawTables struct {
	Holidays          [][]string
	ClassSessions     [][]string
	BreakTimes        [][]string
	Classes           [][]string
	Teachers          [][]string
	Subjects          [][]string
	Events            [][]string
	MainSchedule      [][]string
	TemporarySchedule [][]string
	TemporaryPeriod   [][]string
}

// Builder transforms raw tables into the normalized schedule store.
// Malformed grid cells are ignored; malformed dates fail the build.
type Builder struct {
	log *zerolog.Logger
}

// NewBuilder creates a builder.
func NewBuilder(log *zerolog.Logger) *Builder {
	return &Builder{log: log}
}

type daySlot struct {
	day  string
	slot string
}

// Build runs the full transformation. The window limits which holiday
// ranges are retained.
func (b *Builder) Build(raw RawTables, window models.DateRange) (*models.ScheduleData, error) {
	data := models.NewScheduleData()

	if err := b.mapHolidays(data, raw.Holidays, window); err != nil {
		return nil, err
	}

	sessionIDs := b.assembleTimetables(data, raw.ClassSessions, raw.BreakTimes)
	classIDs := b.mapClasses(data, raw.Classes, sessionIDs)
	teacherByNumber := b.mapTeachers(data, raw.Teachers, sessionIDs)

	for _, row := range raw.Subjects {
		if len(row) >= 2 {
			data.Subjects[row[0]] = row[1]
		}
	}
	for _, row := range raw.Events {
		if len(row) >= 3 {
			data.Events[row[0]] = models.EventDetail{Title: row[1], Detail: row[2]}
		}
	}

	period, err := parseTemporaryPeriod(raw.TemporaryPeriod)
	if err != nil {
		return nil, err
	}
	data.Schedules.TemporaryPeriod = period

	exceptions := b.applyMainGrid(data, raw.MainSchedule, sessionIDs, classIDs, teacherByNumber)
	b.applyTemporaryGrid(data, raw.TemporarySchedule, sessionIDs, classIDs, teacherByNumber, exceptions)

	b.pruneIdleTeachers(data, sessionIDs)
	b.pruneExceptionSlots(data, exceptions)

	return data, nil
}

func (b *Builder) mapHolidays(data *models.ScheduleData, rows [][]string, window models.DateRange) error {
	for _, row := range rows {
		if len(row) != 2 {
			continue
		}
		start, err := ParseDateCode(row[0])
		if err != nil {
			return fmt.Errorf("holiday: %w", err)
		}
		end, err := ParseDateCode(row[1])
		if err != nil {
			return fmt.Errorf("holiday: %w", err)
		}
		holiday := models.DateRange{Start: start, End: end}
		if holiday.Overlaps(window) {
			data.Holidays = append(data.Holidays, holiday)
		}
	}
	return nil
}

// assembleTimetables builds the canonical slot list: teaching periods in
// order, with a break slot inserted right after any period whose end time
// matches the next pending break's start time. Returns the teaching slot
// ids, which double as the per-day schedule keys.
func (b *Builder) assembleTimetables(data *models.ScheduleData, sessions, breaks [][]string) []string {
	var breakTimes []models.TimeRange
	for _, row := range breaks {
		if len(row) == 2 {
			breakTimes = append(breakTimes, models.TimeRange{Start: row[0], End: row[1]})
		}
	}

	var sessionIDs []string
	breakIdx := 0
	for _, row := range sessions {
		if len(row) < 2 {
			continue
		}
		id := fmt.Sprintf("CS%d", len(sessionIDs)+1)
		data.Timetables = append(data.Timetables, models.Timetable{
			ID:      id,
			Periode: fmt.Sprintf("[%d] %s - %s", len(sessionIDs)+1, row[0], row[1]),
		})
		sessionIDs = append(sessionIDs, id)

		if breakIdx < len(breakTimes) && row[1] == breakTimes[breakIdx].Start {
			data.Timetables = append(data.Timetables, models.Timetable{
				ID:          fmt.Sprintf("BT%d", breakIdx+1),
				Periode:     fmt.Sprintf("%s - %s", breakTimes[breakIdx].Start, breakTimes[breakIdx].End),
				IsBreakTime: true,
			})
			breakIdx++
		}
	}
	return sessionIDs
}

func (b *Builder) mapClasses(data *models.ScheduleData, rows [][]string, sessionIDs []string) []string {
	var classIDs []string
	for _, row := range rows {
		if len(row) < 1 {
			continue
		}
		id := fmt.Sprintf("C%03d", len(classIDs)+1)
		data.Classes[id] = row[0]
		classIDs = append(classIDs, id)
		data.Schedules.Data[id] = defaultSchedule(models.EntityClass, sessionIDs)
	}
	return classIDs
}

// mapTeachers keys teacher ids by the spreadsheet-given number and keeps
// the reverse lookup used to decode grid cells.
func (b *Builder) mapTeachers(data *models.ScheduleData, rows [][]string, sessionIDs []string) map[string]string {
	byNumber := make(map[string]string)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		id := "T" + padNumber(row[0])
		data.Teachers[id] = fmt.Sprintf("[%s] %s", row[0], row[1])
		byNumber[row[0]] = id
		data.Schedules.Data[id] = defaultSchedule(models.EntityTeacher, sessionIDs)
	}
	return byNumber
}

func defaultSchedule(t models.EntityType, sessionIDs []string) *models.EntitySchedule {
	es := &models.EntitySchedule{
		Type:     t,
		Schedule: make(map[string]models.DaySchedule, len(models.DaysEN)),
	}
	for _, day := range models.DaysEN {
		slots := make(models.DaySchedule, len(sessionIDs))
		for _, id := range sessionIDs {
			slots[id] = &models.SlotAssignment{Main: models.FreeTime()}
		}
		es.Schedule[day] = slots
	}
	return es
}

func parseTemporaryPeriod(rows [][]string) (models.DateRange, error) {
	if len(rows) < 2 || len(rows[0]) < 1 || len(rows[1]) < 1 {
		return models.DateRange{}, fmt.Errorf("temporary period: expected two date rows, got %d", len(rows))
	}
	start, err := ParseDateCode(rows[0][0])
	if err != nil {
		return models.DateRange{}, fmt.Errorf("temporary period: %w", err)
	}
	end, err := ParseDateCode(rows[1][0])
	if err != nil {
		return models.DateRange{}, fmt.Errorf("temporary period: %w", err)
	}
	return models.DateRange{Start: start, End: end}, nil
}

// decodeGridRow extracts (day, slot, cells) from one grid row. Rows with
// unknown weekday codes or out-of-range slot ordinals are skipped.
func decodeGridRow(row []string, sessionIDs []string) (day, slotID string, cells []string, ok bool) {
	if len(row) < 4 {
		return "", "", nil, false
	}
	day, ok = models.DayFromID[row[0]]
	if !ok {
		return "", "", nil, false
	}
	ordinal, err := strconv.Atoi(row[1])
	if err != nil || ordinal < 1 || ordinal > len(sessionIDs) {
		return "", "", nil, false
	}
	return day, sessionIDs[ordinal-1], row[3:], true
}

// applyMainGrid decodes the main schedule grid. A cell that schedules a
// class session writes both sides of the pair in one step: the subject on
// the class, the mirrored session on the teacher. Returns the (day, slot)
// pairs that were free across every class, which become removal candidates.
func (b *Builder) applyMainGrid(data *models.ScheduleData, grid [][]string, sessionIDs, classIDs []string, teacherByNumber map[string]string) map[daySlot]bool {
	exceptions := make(map[daySlot]bool)
	ignored := 0

	for _, row := range grid {
		day, slotID, cells, ok := decodeGridRow(row, sessionIDs)
		if !ok {
			continue
		}

		freeCount := 0
		for idx, cell := range cells {
			if idx >= len(classIDs) {
				break
			}
			classID := classIDs[idx]

			switch {
			case isEvent(data, cell):
				data.Schedules.Data[classID].Schedule[day][slotID].Main = models.Event(cell)
			case cell == "-":
				freeCount++
			default:
				number, subjectID, isSession := splitSessionCell(cell)
				teacherID := teacherByNumber[number]
				if !isSession || teacherID == "" {
					ignored++
					continue
				}
				setMainSession(data, classID, teacherID, day, slotID, subjectID)
			}
		}

		if freeCount == len(classIDs) {
			exceptions[daySlot{day, slotID}] = true
		}
	}

	if ignored > 0 {
		b.log.Debug().Int("cells", ignored).Msg("ignored unrecognized main grid cells")
	}
	return exceptions
}

// setMainSession is the single place a grid cell touches two entities:
// the class gets the session pointing at the teacher, the teacher gets the
// mirror pointing back at the class.
func setMainSession(data *models.ScheduleData, classID, teacherID, day, slotID, subjectID string) {
	data.Schedules.Data[classID].Schedule[day][slotID].Main = models.ClassSession(subjectID, teacherID)
	data.Schedules.Data[teacherID].Schedule[day][slotID].Main = models.ClassSession(subjectID, classID)
}

// applyTemporaryGrid layers the override grid on top of the resolved main
// assignments. A cell structurally identical to main is a no-op. When an
// override displaces a main class session, the paired teacher is freed for
// that slot unless an earlier row already wrote its override (first writer
// wins, in raw row-encounter order).
func (b *Builder) applyTemporaryGrid(data *models.ScheduleData, grid [][]string, sessionIDs, classIDs []string, teacherByNumber map[string]string, exceptions map[daySlot]bool) {
	ignored := 0

	for _, row := range grid {
		day, slotID, cells, ok := decodeGridRow(row, sessionIDs)
		if !ok {
			continue
		}

		for idx, cell := range cells {
			if idx >= len(classIDs) {
				break
			}
			classID := classIDs[idx]
			assign := data.Schedules.Data[classID].Schedule[day][slotID]
			main := assign.Main
			pairSlot := pairedSlot(data, main, day, slotID)
			pairFree := pairSlot != nil && pairSlot.Temporary == nil

			switch {
			case isEvent(data, cell):
				if main.Type == models.ItemEvent && main.Title == cell {
					continue
				}
				assign.Temporary = itemPtr(models.Event(cell))
				if pairFree {
					pairSlot.Temporary = itemPtr(models.FreeTime())
				}
			case cell == "-":
				if main.Type == models.ItemFreeTime {
					continue
				}
				assign.Temporary = itemPtr(models.FreeTime())
				if pairFree {
					pairSlot.Temporary = itemPtr(models.FreeTime())
				}
			default:
				number, subjectID, isSession := splitSessionCell(cell)
				teacherID := teacherByNumber[number]
				if !isSession || teacherID == "" {
					ignored++
					continue
				}
				if main.Equal(models.ClassSession(subjectID, teacherID)) {
					continue
				}
				// This slot is no longer universally free.
				delete(exceptions, daySlot{day, slotID})

				assign.Temporary = itemPtr(models.ClassSession(subjectID, teacherID))
				data.Schedules.Data[teacherID].Schedule[day][slotID].Temporary = itemPtr(models.ClassSession(subjectID, classID))
				if pairFree {
					pairSlot.Temporary = itemPtr(models.FreeTime())
				}
			}
		}
	}

	if ignored > 0 {
		b.log.Debug().Int("cells", ignored).Msg("ignored unrecognized temporary grid cells")
	}
}

// pairedSlot resolves the other half of a class-session assignment.
func pairedSlot(data *models.ScheduleData, main models.ScheduleItem, day, slotID string) *models.SlotAssignment {
	if main.Type != models.ItemClassSession {
		return nil
	}
	pair, ok := data.Schedules.Data[main.Detail]
	if !ok {
		return nil
	}
	return pair.Schedule[day][slotID]
}

// pruneIdleTeachers drops teachers whose whole week is free time in main.
func (b *Builder) pruneIdleTeachers(data *models.ScheduleData, sessionIDs []string) {
	total := len(models.DaysEN) * len(sessionIDs)
	for teacherID := range data.Teachers {
		free := 0
		sched := data.Schedules.Data[teacherID]
		for _, day := range models.DaysEN {
			for _, slotID := range sessionIDs {
				if sched.Schedule[day][slotID].Main.Type == models.ItemFreeTime {
					free++
				}
			}
		}
		if free == total {
			delete(data.Schedules.Data, teacherID)
			delete(data.Teachers, teacherID)
		}
	}
}

// pruneExceptionSlots removes universally free (day, slot) entries from
// every remaining entity. The key is deleted, not marked free.
func (b *Builder) pruneExceptionSlots(data *models.ScheduleData, exceptions map[daySlot]bool) {
	for ds := range exceptions {
		for classID := range data.Classes {
			delete(data.Schedules.Data[classID].Schedule[ds.day], ds.slot)
		}
		for teacherID := range data.Teachers {
			delete(data.Schedules.Data[teacherID].Schedule[ds.day], ds.slot)
		}
	}
}

func isEvent(data *models.ScheduleData, cell string) bool {
	_, ok := data.Events[cell]
	return ok
}

// splitSessionCell decodes a "teacherNumber_subjectID" cell.
func splitSessionCell(cell string) (number, subjectID string, ok bool) {
	for i := 0; i < len(cell); i++ {
		if cell[i] == '_' {
			return cell[:i], cell[i+1:], true
		}
	}
	return "", "", false
}

func itemPtr(item models.ScheduleItem) *models.ScheduleItem {
	return &item
}

// padNumber left-pads a spreadsheet teacher number to three digits.
func padNumber(n string) string {
	for len(n) < 3 {
		n = "0" + n
	}
	return n
}
