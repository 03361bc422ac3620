package models

// Color highlights a class session by subject group.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
)

// ComponentItem is a ScheduleItem resolved for display: ids replaced with
// names, a highlight color attached to class sessions.
type ComponentItem struct {
	Type   ItemType `json:"type"`
	Title  string   `json:"title"`
	Detail string   `json:"detail,omitempty"`
	Color  Color    `json:"color,omitempty"`
}

// ComponentSlot pairs the displayed main entry with its visible override.
type ComponentSlot struct {
	Main      ComponentItem  `json:"main"`
	Temporary *ComponentItem `json:"temporary,omitempty"`
}

// DayType tags a projected day card.
type DayType string

const (
	DayActive  DayType = "active"
	DayHoliday DayType = "holiday"
)

// DayDetail is one projected day card of the weekly view. Timetables is
// empty for weekends, holidays and fully free weekdays.
type DayDetail struct {
	DayID        string                    `json:"day_ID"`
	DayEN        string                    `json:"day_EN"`
	Date         int                       `json:"date"`
	FormatedDate int                       `json:"formated_date"`
	Type         DayType                   `json:"type"`
	Timetables   map[string]*ComponentSlot `json:"timetables"`
}

// ComponentData is the weekly view for one entity. HasTemporary is true
// when any day hit a holiday or an in-period temporary override.
type ComponentData struct {
	HasTemporary bool        `json:"has_temporary"`
	Data         []DayDetail `json:"data"`
}

// DateDetail is one calendar day of a week descriptor.
type DateDetail struct {
	DayName  string `json:"day_name"`
	Date     int    `json:"date"`
	Formated int    `json:"formated"`
}

// WeekRange describes the seven days of a displayed week, Monday first.
type WeekRange struct {
	MonthYear string       `json:"month_year"`
	Dates     []DateDetail `json:"dates"`
	StartDate int          `json:"start_date"`
	EndDate   int          `json:"end_date"`
}
