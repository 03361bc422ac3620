package schedule

import (
	"fmt"

	"jadwalku/internal/models"
)

// Project derives the weekly view for one entity. It is a pure function of
// the store, the week descriptor, the entity id and the caller-supplied
// "today" day code. An unknown entity yields an empty view.
func Project(data *models.ScheduleData, week models.WeekRange, id string, today int) models.ComponentData {
	result := models.ComponentData{Data: []models.DayDetail{}}

	entity, ok := data.Schedules.Data[id]
	if !ok {
		return result
	}

	for idx, d := range week.Dates {
		dayName := d.DayName
		if today == d.Formated {
			dayName = "Today"
		}

		holiday := isHoliday(data.Holidays, d.Formated)
		switch {
		case d.DayName == "Sun" || holiday:
			if holiday {
				result.HasTemporary = true
			}
			result.Data = append(result.Data, emptyDay(dayName, "Minggu", d, models.DayHoliday))
		case d.DayName == "Sat":
			result.Data = append(result.Data, emptyDay(dayName, "Sabtu", d, models.DayActive))
		default:
			day := projectWeekday(data, entity, id, d, dayName, models.DaysID[idx], &result.HasTemporary)
			result.Data = append(result.Data, day)
		}
	}

	return result
}

// projectWeekday walks the global slot list for one Mon-Fri day. Break
// slots are synthesized with their 1-based ordinal; teaching slots resolve
// the stored assignment, gating the temporary layer by the global override
// period. A day whose visible layer is entirely free time is emitted with
// empty timetables.
func projectWeekday(data *models.ScheduleData, entity *models.EntitySchedule, id string, d models.DateDetail, dayName, dayID string, hasTemporary *bool) models.DayDetail {
	slots := make(map[string]*models.ComponentSlot)
	freeCount := 0
	breakOrdinal := 1
	sessionCount := 0

	for _, tt := range data.Timetables {
		if tt.IsBreakTime {
			slots[tt.ID] = &models.ComponentSlot{
				Main: models.ComponentItem{
					Type:  models.ItemBreakTime,
					Title: fmt.Sprintf("Istirahat ke-%d", breakOrdinal),
				},
			}
			breakOrdinal++
			continue
		}

		assign, ok := entity.Schedule[d.DayName][tt.ID]
		if !ok {
			continue
		}
		sessionCount++

		slot := &models.ComponentSlot{Main: resolveItem(data, assign.Main, id)}
		visible := assign.Main
		if assign.Temporary != nil && data.Schedules.TemporaryPeriod.Contains(d.Formated) {
			*hasTemporary = true
			tmp := resolveItem(data, *assign.Temporary, id)
			slot.Temporary = &tmp
			visible = *assign.Temporary
		}
		if visible.Type == models.ItemFreeTime {
			freeCount++
		}
		slots[tt.ID] = slot
	}

	day := models.DayDetail{
		DayID:        dayID,
		DayEN:        dayName,
		Date:         d.Date,
		FormatedDate: d.Formated,
		Type:         models.DayActive,
		Timetables:   slots,
	}
	if freeCount == sessionCount {
		day.Timetables = map[string]*models.ComponentSlot{}
	}
	return day
}

func emptyDay(dayEN, dayID string, d models.DateDetail, t models.DayType) models.DayDetail {
	return models.DayDetail{
		DayID:        dayID,
		DayEN:        dayEN,
		Date:         d.Date,
		FormatedDate: d.Formated,
		Type:         t,
		Timetables:   map[string]*models.ComponentSlot{},
	}
}

// resolveItem turns a stored item into its display form: event ids become
// titles, subject and paired-entity ids become names, class sessions get
// their highlight color.
func resolveItem(data *models.ScheduleData, item models.ScheduleItem, id string) models.ComponentItem {
	switch item.Type {
	case models.ItemEvent:
		ev := data.Events[item.Title]
		return models.ComponentItem{Type: models.ItemEvent, Title: ev.Title, Detail: ev.Detail}
	case models.ItemClassSession:
		detail := data.Classes[item.Detail]
		if data.Schedules.Data[id].Type == models.EntityClass {
			detail = data.Teachers[item.Detail]
		}
		return models.ComponentItem{
			Type:   models.ItemClassSession,
			Color:  highlightColor(item.Title),
			Title:  data.Subjects[item.Title],
			Detail: detail,
		}
	default:
		return models.ComponentItem{Type: models.ItemFreeTime}
	}
}

func highlightColor(subjectID string) models.Color {
	switch {
	case subjectID == "K":
		return models.ColorBlue
	case len(subjectID) > 0 && subjectID[0] == 'W':
		return models.ColorGreen
	default:
		return models.ColorPurple
	}
}

func isHoliday(holidays []models.DateRange, code int) bool {
	for _, h := range holidays {
		if h.Contains(code) {
			return true
		}
	}
	return false
}
