// Package pdf renders a projected weekly schedule as a printable
// landscape document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"jadwalku/internal/models"
)

// Props is everything one document render consumes.
type Props struct {
	Timetable []models.Timetable
	Schedule  []models.DayDetail
	IsClass   bool
	Title     string
	Detail    string
}

const (
	canvasWidth  = 1230.0
	canvasHeight = 945.0
	pagePadding  = 15.0
	headerHeight = 100.0
	dayHeight    = 40.0
	cellPadding  = 6.0
)

type generator struct {
	doc *gofpdf.Fpdf

	contentWidth  float64
	contentHeight float64
	tableWidth    float64
	tableHeight   float64
	startX        float64
	startY        float64

	data Props
}

// Generate renders the document and returns its bytes.
func Generate(p Props) ([]byte, error) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: canvasWidth, Ht: canvasHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	g := &generator{
		doc:          doc,
		contentWidth: canvasWidth - pagePadding*2,
		startX:       pagePadding,
		startY:       pagePadding,
		data:         p,
	}
	g.tableWidth = g.contentWidth / 6

	g.addHeader()
	g.addDays()
	g.addTimetables()
	g.addSchedules()

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func textHeight(size float64) float64 {
	return size * 0.75
}

// centerText computes the baseline position that centers text in a box.
func (g *generator) centerText(x, y, w, h, size float64, text string) (float64, float64) {
	tx := x + (w-g.doc.GetStringWidth(text))/2
	ty := h - (h-textHeight(size))/2 + y
	return tx, ty
}

// fitText shrinks the font until text fits the box in at most maxLines.
func (g *generator) fitText(w, h, maxSize float64, text string, maxLines int) ([]string, float64) {
	size := maxSize
	if size == 0 {
		size = h
	}
	if text == "" {
		return []string{""}, size
	}
	lines := []string{text}
	for size > 1 {
		g.doc.SetFontSize(size)
		if g.doc.GetStringWidth(text) > w {
			lines = g.doc.SplitText(text, w)
		} else {
			lines = []string{text}
		}
		if len(lines) <= maxLines && float64(len(lines))*size <= h {
			break
		}
		size -= 0.25
	}
	return lines, size
}

func (g *generator) addHeader() {
	height := headerHeight - 25
	y := g.startY
	spacer := height * 0.1
	typeSize := height * 0.21
	nameSize := height * 0.34
	detailSize := height * 0.25

	label := "Jadwal Guru"
	if g.data.IsClass {
		label = "Jadwal Kelas"
	}

	g.doc.SetFont("Helvetica", "", typeSize)
	g.doc.Text(g.startX, y+textHeight(typeSize), label)
	y += typeSize + spacer

	g.doc.SetFont("Helvetica", "B", nameSize)
	g.doc.Text(g.startX, y+textHeight(nameSize), g.data.Title)
	y += nameSize + spacer

	g.doc.SetFont("Helvetica", "", detailSize)
	g.doc.Text(g.startX, y+textHeight(detailSize), g.data.Detail)

	g.startY += headerHeight
}

func (g *generator) addDays() {
	_, size := g.fitText(g.tableWidth, dayHeight*0.6, dayHeight*0.6, models.DaysID[0], 1)

	for i := 1; i <= 5; i++ {
		x := g.startX + g.tableWidth*float64(i)
		g.doc.SetFillColor(167, 196, 220)
		g.doc.SetDrawColor(0, 0, 0)
		g.doc.SetLineWidth(2)
		g.doc.Rect(x, g.startY, g.tableWidth, dayHeight, "FD")

		day := models.DaysID[i-1]
		g.doc.SetFont("Helvetica", "B", size)
		tx, ty := g.centerText(x, g.startY, g.tableWidth, dayHeight, size, day)
		g.doc.Text(tx, ty, day)
	}

	g.startY += dayHeight
}

func (g *generator) addTimetables() {
	g.contentHeight = canvasHeight - headerHeight - dayHeight - pagePadding*2
	g.tableHeight = g.contentHeight / 12

	breakOrdinal := 1
	for i, tt := range g.data.Timetable {
		y := g.startY + g.tableHeight*float64(i)
		if tt.IsBreakTime {
			g.doc.SetFillColor(0, 0, 0)
			g.doc.SetDrawColor(0, 0, 0)
			g.doc.SetLineWidth(2)
			g.doc.Rect(g.startX, y, g.tableWidth*6, g.tableHeight, "FD")

			x := g.startX + g.tableWidth
			text := fmt.Sprintf("Istirahat Ke-%d", breakOrdinal)
			width := g.tableWidth * 5
			_, size := g.fitText(width, g.tableHeight*0.6, g.tableHeight*0.6, text, 1)

			g.doc.SetTextColor(255, 255, 255)
			g.doc.SetFont("Helvetica", "B", size)
			tx, ty := g.centerText(x, y, width, g.tableHeight, size, text)
			g.doc.Text(tx, ty, text)

			breakOrdinal++
		} else {
			g.doc.SetTextColor(0, 0, 0)
			g.doc.SetFillColor(157, 205, 192)
			g.doc.SetDrawColor(0, 0, 0)
			g.doc.SetLineWidth(2)
			g.doc.Rect(g.startX, y, g.tableWidth, g.tableHeight, "FD")
		}

		_, size := g.fitText(g.tableWidth*0.8, g.tableHeight, g.tableHeight, tt.Periode, 1)
		g.doc.SetTextColor(0, 0, 0)
		g.doc.SetFont("Helvetica", "B", size)
		tx, ty := g.centerText(g.startX, y, g.tableWidth, g.tableHeight, size, tt.Periode)
		g.doc.Text(tx, ty, tt.Periode)
	}

	g.startX += g.tableWidth
}

func (g *generator) addSchedules() {
	innerWidth := g.tableWidth - cellPadding*2
	innerHeight := g.tableHeight - cellPadding*2

	for i := 0; i < 5 && i < len(g.data.Schedule); i++ {
		x := g.startX + g.tableWidth*float64(i)
		day := g.data.Schedule[i]

		if day.Type == models.DayHoliday {
			for j, tt := range g.data.Timetable {
				if tt.IsBreakTime {
					continue
				}
				y := g.startY + g.tableHeight*float64(j)
				g.doc.SetFillColor(254, 109, 115)
				g.doc.SetDrawColor(0, 0, 0)
				g.doc.SetLineWidth(2)
				g.doc.Rect(x, y, g.tableWidth, g.tableHeight, "FD")
			}
			continue
		}

		for j, tt := range g.data.Timetable {
			if tt.IsBreakTime {
				continue
			}
			y := g.startY + g.tableHeight*float64(j)
			slot := day.Timetables[tt.ID]
			if slot == nil {
				g.emptyCell(x, y, false)
				continue
			}
			if slot.Main.Type == models.ItemBreakTime {
				continue
			}

			title := slot.Main.Title
			detail := ""
			if slot.Main.Type == models.ItemClassSession || slot.Main.Type == models.ItemEvent {
				detail = slot.Main.Detail
			}

			if slot.Temporary != nil && slot.Temporary.Type != models.ItemBreakTime {
				g.emptyCell(x, y, true)
				if slot.Temporary.Type == models.ItemFreeTime {
					continue
				}
				title = slot.Temporary.Title
				detail = slot.Temporary.Detail
			} else {
				g.emptyCell(x, y, false)
			}

			g.cellText(x, y, innerWidth, innerHeight, title, detail)
		}
	}
}

// emptyCell draws a slot border; filled cells mark displaced slots.
func (g *generator) emptyCell(x, y float64, fill bool) {
	g.doc.SetLineWidth(2)
	g.doc.SetDrawColor(0, 0, 0)
	g.doc.SetFillColor(237, 231, 177)
	style := "D"
	if fill {
		style = "FD"
	}
	g.doc.Rect(x, y, g.tableWidth, g.tableHeight, style)
}

func (g *generator) cellText(x, y, innerWidth, innerHeight float64, title, detail string) {
	g.doc.SetFont("Helvetica", "B", innerHeight*0.35)
	titleLines, titleSize := g.fitText(innerWidth, innerHeight*0.4, innerHeight*0.35, title, 2)
	g.doc.SetFontSize(titleSize)
	for i, line := range titleLines {
		g.doc.Text(x+cellPadding, y+textHeight(titleSize)+cellPadding+float64(i)*titleSize, line)
	}

	if detail == "" {
		return
	}
	g.doc.SetFont("Helvetica", "", innerHeight*0.28)
	detailLines, detailSize := g.fitText(innerWidth, innerHeight*0.6, innerHeight*0.28, detail, 2)
	g.doc.SetFontSize(detailSize)
	bottom := 0.0
	if len(detailLines) == 2 {
		bottom = detailSize
	}
	for i, line := range detailLines {
		g.doc.Text(x+cellPadding, y+g.tableHeight-cellPadding*1.5-bottom+float64(i)*detailSize, line)
	}
}
