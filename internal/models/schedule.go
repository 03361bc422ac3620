package models

// Weekday names used across the schedule grids. The spreadsheet uses the
// Indonesian names; everything downstream is keyed by the English ones.
var (
	DaysEN = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	DaysID = []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat"}
)

// DayFromID maps the spreadsheet weekday codes to schedule keys.
var DayFromID = map[string]string{
	"Senin":  "Mon",
	"Selasa": "Tue",
	"Rabu":   "Wed",
	"Kamis":  "Thu",
	"Jumat":  "Fri",
}

// ItemType tags a ScheduleItem variant.
type ItemType string

const (
	ItemFreeTime     ItemType = "free-time"
	ItemEvent        ItemType = "event"
	ItemClassSession ItemType = "class-session"
	ItemBreakTime    ItemType = "break-time"
)

// ScheduleItem is one entry of an entity's schedule. For an event, Title is
// the event id. For a class session, Title is the subject id and Detail is
// the paired entity id (teacher id on a class, class id on a teacher).
type ScheduleItem struct {
	Type   ItemType `json:"type"`
	Title  string   `json:"title"`
	Detail string   `json:"detail,omitempty"`
}

// FreeTime returns the empty-slot item.
func FreeTime() ScheduleItem {
	return ScheduleItem{Type: ItemFreeTime, Title: ""}
}

// Event returns an event item referencing an event id.
func Event(id string) ScheduleItem {
	return ScheduleItem{Type: ItemEvent, Title: id}
}

// ClassSession returns a class-session item for a subject and paired entity.
func ClassSession(subjectID, pairedID string) ScheduleItem {
	return ScheduleItem{Type: ItemClassSession, Title: subjectID, Detail: pairedID}
}

// Equal reports whether two items are identical in kind and content.
func (i ScheduleItem) Equal(o ScheduleItem) bool {
	return i.Type == o.Type && i.Title == o.Title && i.Detail == o.Detail
}

// SlotAssignment holds the semester-long main entry plus an optional
// date-scoped temporary override for one day/slot.
type SlotAssignment struct {
	Main      ScheduleItem  `json:"main"`
	Temporary *ScheduleItem `json:"temporary,omitempty"`
}

// EntityType discriminates class schedules from teacher schedules.
type EntityType string

const (
	EntityClass   EntityType = "class"
	EntityTeacher EntityType = "teacher"
)

// DaySchedule maps timetable slot id to its assignment.
type DaySchedule map[string]*SlotAssignment

// EntitySchedule is the full weekly schedule of one class or teacher.
type EntitySchedule struct {
	Type     EntityType             `json:"type"`
	Schedule map[string]DaySchedule `json:"schedule"`
}

// Timetable is one globally ordered slot, either a teaching period (CSn)
// or a break (BTn).
type Timetable struct {
	ID          string `json:"id"`
	Periode     string `json:"periode"`
	IsBreakTime bool   `json:"is_break_time"`
}

// DateRange is an inclusive range of yyyymmdd day codes.
type DateRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the day code falls inside the range.
func (r DateRange) Contains(code int) bool {
	return r.Start <= code && code <= r.End
}

// Overlaps reports whether two ranges share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.End >= o.Start && r.Start <= o.End
}

// TimeRange is a wall-clock period, e.g. "07:30" - "08:10".
type TimeRange struct {
	Start string
	End   string
}

// EventDetail is the display payload of a shared event.
type EventDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// AcademicSemester identifies the release cycle of the schedule.
type AcademicSemester struct {
	Semester string `json:"semester"`
	Year     string `json:"year"`
}

// ScheduleStore holds every entity's normalized schedule plus the single
// temporary-override period shared by the whole release cycle.
type ScheduleStore struct {
	TemporaryPeriod DateRange                  `json:"temporary_period"`
	Data            map[string]*EntitySchedule `json:"data"`
}

// ScheduleData is the full document returned by the schedule endpoint.
type ScheduleData struct {
	AcademicSemester AcademicSemester       `json:"academic_semester"`
	Classes          map[string]string      `json:"classes"`
	Teachers         map[string]string      `json:"teachers"`
	Subjects         map[string]string      `json:"subjects"`
	Events           map[string]EventDetail `json:"events"`
	Holidays         []DateRange            `json:"holidays"`
	Timetables       []Timetable            `json:"timetables"`
	Schedules        ScheduleStore          `json:"schedules"`
}

// NewScheduleData returns an empty document with all maps initialized.
func NewScheduleData() *ScheduleData {
	return &ScheduleData{
		Classes:  make(map[string]string),
		Teachers: make(map[string]string),
		Subjects: make(map[string]string),
		Events:   make(map[string]EventDetail),
		Holidays: []DateRange{},
		Schedules: ScheduleStore{
			Data: make(map[string]*EntitySchedule),
		},
	}
}
