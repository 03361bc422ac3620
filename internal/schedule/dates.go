package schedule

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006/01/02"

// ParseDateCode parses a "yyyy/mm/dd" cell into a yyyymmdd day code.
// Day codes order totally as plain integers.
func ParseDateCode(s string) (int, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DayCodeOf(t), nil
}

// DayCodeOf converts a time to its yyyymmdd day code.
func DayCodeOf(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
