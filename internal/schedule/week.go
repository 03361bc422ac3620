package schedule

import (
	"fmt"
	"time"

	"jadwalku/internal/models"
)

// Week selects which of the two generated week ranges to use.
type Week int

const (
	ThisWeek Week = iota
	NextWeek
)

// WeekSet holds the two displayable week ranges derived from a reference
// time. On Sundays the upcoming week is the only sensible target, so both
// ranges collapse onto it and Default switches to NextWeek.
type WeekSet struct {
	ThisWeek models.WeekRange
	NextWeek models.WeekRange
	Default  Week

	monday time.Time
	sunday time.Time
}

// NewWeekSet computes the week ranges around now. The caller supplies the
// clock so tests can pin it.
func NewWeekSet(now time.Time) WeekSet {
	var ws WeekSet

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	if weekday == 7 {
		ws.monday = now.AddDate(0, 0, 1)
		ws.sunday = ws.monday.AddDate(0, 0, 6)
		ws.NextWeek = buildWeekRange(ws.monday, ws.sunday)
		ws.ThisWeek = ws.NextWeek
		ws.Default = NextWeek
		return ws
	}

	ws.monday = now.AddDate(0, 0, -(weekday - 1))
	ws.sunday = ws.monday.AddDate(0, 0, 6)
	ws.ThisWeek = buildWeekRange(ws.monday, ws.sunday)
	ws.Default = ThisWeek

	nextMonday := ws.sunday.AddDate(0, 0, 1)
	ws.NextWeek = buildWeekRange(nextMonday, nextMonday.AddDate(0, 0, 6))
	return ws
}

// Range returns the requested week.
func (ws WeekSet) Range(w Week) models.WeekRange {
	if w == NextWeek {
		return ws.NextWeek
	}
	return ws.ThisWeek
}

// FetchWindow is the holiday retention window for a retrieval request:
// this Monday through next Sunday, or just the upcoming week when the
// request lands on a Sunday.
func (ws WeekSet) FetchWindow() models.DateRange {
	end := ws.sunday
	if ws.Default != NextWeek {
		end = end.AddDate(0, 0, 7)
	}
	return models.DateRange{Start: DayCodeOf(ws.monday), End: DayCodeOf(end)}
}

func buildWeekRange(monday, sunday time.Time) models.WeekRange {
	wr := models.WeekRange{
		MonthYear: monthYearLabel(monday, sunday),
		StartDate: monday.Day(),
		EndDate:   sunday.Day(),
	}

	day := monday
	for i := 0; i < 7; i++ {
		wr.Dates = append(wr.Dates, models.DateDetail{
			DayName:  day.Format("Mon"),
			Date:     day.Day(),
			Formated: DayCodeOf(day),
		})
		day = day.AddDate(0, 0, 1)
	}
	return wr
}

func monthYearLabel(monday, sunday time.Time) string {
	switch {
	case monday.Year() != sunday.Year():
		return fmt.Sprintf("%s %d - %s %d", monday.Format("Jan"), monday.Year(), sunday.Format("Jan"), sunday.Year())
	case monday.Month() != sunday.Month():
		return fmt.Sprintf("%s - %s %d", monday.Format("Jan"), sunday.Format("Jan"), sunday.Year())
	default:
		return fmt.Sprintf("%s %d", monday.Format("Jan"), monday.Year())
	}
}
