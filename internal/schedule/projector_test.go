package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jadwalku/internal/models"
)

// scenarioData builds the store from the documented example: slot list
// [CS1, BT1, CS2], C001 with a Monday Kimia session taught by T001, and a
// temporary cancellation of that slot.
func scenarioData(t *testing.T) *models.ScheduleData {
	t.Helper()
	raw := baseRaw()
	raw.MainSchedule = [][]string{
		{"Senin", "1", "x", "1_K", "2_MTK"},
		{"Senin", "2", "x", "2_W1", "1_K"},
	}
	raw.TemporarySchedule = [][]string{
		{"Senin", "1", "x", "-", "2_MTK"},
	}
	return buildWith(t, raw)
}

// januaryWeek is Mon 2025-01-06 .. Sun 2025-01-12, inside the fixture's
// override period.
func januaryWeek() models.WeekRange {
	return models.WeekRange{
		MonthYear: "Jan 2025",
		Dates: []models.DateDetail{
			{DayName: "Mon", Date: 6, Formated: 20250106},
			{DayName: "Tue", Date: 7, Formated: 20250107},
			{DayName: "Wed", Date: 8, Formated: 20250108},
			{DayName: "Thu", Date: 9, Formated: 20250109},
			{DayName: "Fri", Date: 10, Formated: 20250110},
			{DayName: "Sat", Date: 11, Formated: 20250111},
			{DayName: "Sun", Date: 12, Formated: 20250112},
		},
		StartDate: 6,
		EndDate:   12,
	}
}

const noDay = 0 // a "today" code matching no date in the week

func TestProjectExampleScenario(t *testing.T) {
	data := scenarioData(t)
	view := Project(data, januaryWeek(), "C001", noDay)

	require.Len(t, view.Data, 7)
	assert.True(t, view.HasTemporary)

	monday := view.Data[0]
	assert.Equal(t, "Senin", monday.DayID)
	assert.Equal(t, models.DayActive, monday.Type)

	slot := monday.Timetables["CS1"]
	require.NotNil(t, slot)
	assert.Equal(t, models.ItemClassSession, slot.Main.Type)
	assert.Equal(t, "Kimia", slot.Main.Title)
	assert.Equal(t, "[1] Budi Santoso", slot.Main.Detail)
	assert.Equal(t, models.ColorBlue, slot.Main.Color)
	require.NotNil(t, slot.Temporary)
	assert.Equal(t, models.ItemFreeTime, slot.Temporary.Type)

	// The displaced teacher sees the freed slot too.
	teacherView := Project(data, januaryWeek(), "T001", noDay)
	teacherSlot := teacherView.Data[0].Timetables["CS1"]
	require.NotNil(t, teacherSlot)
	require.NotNil(t, teacherSlot.Temporary)
	assert.Equal(t, models.ItemFreeTime, teacherSlot.Temporary.Type)
	assert.True(t, teacherView.HasTemporary)
}

func TestProjectBreakSlots(t *testing.T) {
	data := scenarioData(t)
	view := Project(data, januaryWeek(), "C001", noDay)

	bt := view.Data[0].Timetables["BT1"]
	require.NotNil(t, bt)
	assert.Equal(t, models.ItemBreakTime, bt.Main.Type)
	assert.Equal(t, "Istirahat ke-1", bt.Main.Title)
}

func TestProjectHighlightColors(t *testing.T) {
	data := scenarioData(t)
	view := Project(data, januaryWeek(), "C001", noDay)

	// W-prefixed subjects highlight green, everything else purple.
	cs2 := view.Data[0].Timetables["CS2"]
	require.NotNil(t, cs2)
	assert.Equal(t, models.ColorGreen, cs2.Main.Color)

	classB := Project(data, januaryWeek(), "C002", noDay)
	assert.Equal(t, models.ColorPurple, classB.Data[0].Timetables["CS1"].Main.Color)
}

func TestProjectClassSessionResolvesPairName(t *testing.T) {
	data := scenarioData(t)

	// A teacher's session points back at the class name.
	view := Project(data, januaryWeek(), "T002", noDay)
	cs2 := view.Data[0].Timetables["CS2"]
	require.NotNil(t, cs2)
	assert.Equal(t, "Wali Kelas", cs2.Main.Title)
	assert.Equal(t, "X-A", cs2.Main.Detail)
}

func TestProjectHolidayPrecedence(t *testing.T) {
	data := scenarioData(t)
	data.Holidays = []models.DateRange{{Start: 20250106, End: 20250106}}

	view := Project(data, januaryWeek(), "C001", noDay)
	monday := view.Data[0]
	assert.Equal(t, models.DayHoliday, monday.Type)
	assert.Equal(t, "Minggu", monday.DayID)
	assert.Empty(t, monday.Timetables)
	assert.True(t, view.HasTemporary)
}

func TestProjectWeekendDays(t *testing.T) {
	data := scenarioData(t)
	view := Project(data, januaryWeek(), "C001", noDay)

	saturday := view.Data[5]
	assert.Equal(t, models.DayActive, saturday.Type)
	assert.Equal(t, "Sabtu", saturday.DayID)
	assert.Empty(t, saturday.Timetables)

	sunday := view.Data[6]
	assert.Equal(t, models.DayHoliday, sunday.Type)
	assert.Equal(t, "Minggu", sunday.DayID)
	assert.Empty(t, sunday.Timetables)
}

func TestProjectTemporaryGatedByPeriod(t *testing.T) {
	data := scenarioData(t)
	// Push the override period far away from the requested week.
	data.Schedules.TemporaryPeriod = models.DateRange{Start: 20250601, End: 20250605}

	view := Project(data, januaryWeek(), "C001", noDay)
	slot := view.Data[0].Timetables["CS1"]
	require.NotNil(t, slot)
	assert.Nil(t, slot.Temporary)
	assert.False(t, view.HasTemporary)
}

func TestProjectTodayLabel(t *testing.T) {
	data := scenarioData(t)
	view := Project(data, januaryWeek(), "C001", 20250108)
	assert.Equal(t, "Today", view.Data[2].DayEN)
	assert.Equal(t, "Mon", view.Data[0].DayEN)
}

func TestProjectUnknownEntity(t *testing.T) {
	data := scenarioData(t)
	view := Project(data, januaryWeek(), "C999", noDay)
	assert.Empty(t, view.Data)
	assert.False(t, view.HasTemporary)
}

func TestProjectAllFreeDayEmitsEmptySlots(t *testing.T) {
	data := scenarioData(t)
	// Tuesday has no assignments at all; the day card stays active but
	// carries no timetables.
	view := Project(data, januaryWeek(), "C001", noDay)
	tuesday := view.Data[1]
	assert.Equal(t, models.DayActive, tuesday.Type)
	assert.Empty(t, tuesday.Timetables)
}

func TestProjectFreeTallyCountsVisibleLayer(t *testing.T) {
	raw := baseRaw()
	// Monday is free in main for both classes on both slots except one
	// override that fills C001's CS1 during the period.
	raw.MainSchedule = [][]string{
		{"Senin", "2", "x", "1_K", "-"},
	}
	raw.TemporarySchedule = [][]string{
		{"Senin", "1", "x", "1_MTK", "-"},
	}
	data := buildWith(t, raw)

	view := Project(data, januaryWeek(), "C001", noDay)
	monday := view.Data[0]
	require.NotEmpty(t, monday.Timetables)
	slot := monday.Timetables["CS1"]
	require.NotNil(t, slot)
	assert.Equal(t, models.ItemFreeTime, slot.Main.Type)
	require.NotNil(t, slot.Temporary)
	assert.Equal(t, "Matematika", slot.Temporary.Title)

	// Outside the period the override is invisible; with CS1 free and CS2
	// the only session... CS2 is a real session, so Monday stays populated,
	// but the gated slot counts as free again.
	data.Schedules.TemporaryPeriod = models.DateRange{Start: 20250601, End: 20250605}
	view = Project(data, januaryWeek(), "C001", noDay)
	assert.Nil(t, view.Data[0].Timetables["CS1"].Temporary)
}
