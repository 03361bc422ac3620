// Package export renders a projected weekly schedule as an XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"jadwalku/internal/models"
)

// Props is everything one workbook render consumes.
type Props struct {
	Timetable []models.Timetable
	Schedule  []models.DayDetail
	IsClass   bool
	Title     string
	Detail    string
}

// Generate renders the workbook: one sheet, a bold day header row, one row
// per timetable slot with the visible (override-aware) entry per weekday.
func Generate(p Props) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(p.Title)
	f.SetSheetName("Sheet1", sheet)

	header := append([]string{"Jam"}, models.DaysID...)
	for col, val := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, "A1", end, style)
	}

	for rowIdx, tt := range p.Timetable {
		row := rowIdx + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, cell, tt.Periode); err != nil {
			return nil, err
		}

		for dayIdx := 0; dayIdx < len(models.DaysID) && dayIdx < len(p.Schedule); dayIdx++ {
			cell, _ = excelize.CoordinatesToCellName(dayIdx+2, row)
			if err := f.SetCellValue(sheet, cell, cellText(p.Schedule[dayIdx], tt)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return append([]byte{}, buf.Bytes()...), nil
}

func cellText(day models.DayDetail, tt models.Timetable) string {
	if day.Type == models.DayHoliday {
		return "Libur"
	}
	slot := day.Timetables[tt.ID]
	if slot == nil {
		return ""
	}

	item := slot.Main
	if slot.Temporary != nil {
		item = *slot.Temporary
	}

	switch item.Type {
	case models.ItemClassSession, models.ItemEvent:
		if item.Detail == "" {
			return item.Title
		}
		return fmt.Sprintf("%s (%s)", item.Title, item.Detail)
	case models.ItemBreakTime:
		return item.Title
	default:
		return ""
	}
}

func sheetName(title string) string {
	if title == "" {
		return "Jadwal"
	}
	// Excel caps sheet names at 31 chars.
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
