// Package render draws the week-grid PNG the admin dashboard embeds as a
// schedule preview.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/lessonhub/scheduler/internal/model"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	minSlotHeight   = 8.0
	totalDays       = 7
	hourPadding     = 2
	defaultMinHour  = 8
	defaultMaxHour  = 18
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}
	slotTextColor  = color.RGBA{20, 24, 28, 230}

	statusColors = map[model.SlotStatus]color.RGBA{
		model.SlotStatusAvailable: {133, 193, 85, 220},
		model.SlotStatusPending:   {255, 200, 87, 230},
		model.SlotStatusApproved:  {255, 182, 193, 255},
		model.SlotStatusRejected:  {158, 158, 158, 200},
	}
	slotDefaultColor = color.RGBA{220, 220, 220, 200}
)

type weekBounds struct {
	start time.Time
	end   time.Time
}

type hourRange struct {
	start int
	end   int
	total int
}

// WeekImage renders one week of a grade's slots as a PNG. The week containing
// anchor is drawn Sunday-first, matching the platform's weekday convention;
// slot times are displayed in loc.
func WeekImage(anchor time.Time, slots []*model.TimeSlot, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	week := weekOf(anchor, loc)
	byDay := groupByDay(slots, loc)
	hours := visibleHours(slots, loc)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDays
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawTitle(dc, week)
	drawHourLabels(dc, hours, cellHeight)

	day := week.start
	for i := 0; i < totalDays; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)
		drawDayColumn(dc, day, i, x, y, dayWidth, dayHeight, hours, cellHeight)
		for _, slot := range byDay[day.Format("2006-01-02")] {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight, loc)
		}
		day = day.AddDate(0, 0, 1)
	}

	drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// weekOf normalizes a date to its Sunday-first week bounds.
func weekOf(t time.Time, loc *time.Location) weekBounds {
	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return weekBounds{start: start, end: start.AddDate(0, 0, 6)}
}

func groupByDay(slots []*model.TimeSlot, loc *time.Location) map[string][]*model.TimeSlot {
	byDay := make(map[string][]*model.TimeSlot)
	for _, slot := range slots {
		key := slot.StartTime.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], slot)
	}
	return byDay
}

// visibleHours trims the grid to the hours slots actually occupy, padded a
// little on each side.
func visibleHours(slots []*model.TimeSlot, loc *time.Location) hourRange {
	minHour, maxHour := 24, 0
	for _, slot := range slots {
		start := slot.StartTime.In(loc)
		end := slot.EndTime.In(loc)
		startH := start.Hour()
		endH := end.Hour()
		if end.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}
	if minHour == 24 {
		minHour, maxHour = defaultMinHour, defaultMaxHour
	}

	start := minHour - hourPadding
	end := maxHour + hourPadding
	if start < 0 {
		start = 0
	}
	if end > 23 {
		end = 23
	}
	return hourRange{start: start, end: end, total: end - start + 1}
}

func drawTitle(dc *gg.Context, week weekBounds) {
	title := week.start.Format("02 Jan") + " - " + week.end.Format("02 Jan 2006")
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, float64(headerHeight)/4, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for i := 0; i < hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		label := fmt.Sprintf("%02d:00", hours.start+i)
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayColumn(dc *gg.Context, day time.Time, index int, x, y float64, dayWidth, dayHeight int, hours hourRange, cellHeight float64) {
	if index%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(day.Format("Mon 02.01"), x+float64(dayWidth)/2, y-14, 0.5, 0.5)

	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, slot *model.TimeSlot, x, y float64, dayWidth int, hours hourRange, cellHeight float64, loc *time.Location) {
	start := slot.StartTime.In(loc)
	end := slot.EndTime.In(loc)
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := float64(end.Hour()) + float64(end.Minute())/60.0

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fill, ok := statusColors[slot.Status]
	if !ok {
		fill = slotDefaultColor
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY, float64(dayWidth)-dayPaddingX*2, slotHeight, 6)
	dc.Fill()

	dc.SetColor(slotTextColor)
	label := start.Format("15:04") + "-" + end.Format("15:04")
	dc.DrawStringAnchored(label, x+float64(dayWidth)/2, slotY+slotHeight/2, 0.5, 0.5)
}

func drawLegend(dc *gg.Context) {
	entries := []struct {
		status model.SlotStatus
		label  string
	}{
		{model.SlotStatusAvailable, "available"},
		{model.SlotStatusPending, "pending"},
		{model.SlotStatusApproved, "approved"},
		{model.SlotStatusRejected, "rejected"},
	}

	x := float64(imageWidth - legendWidth + 10)
	y := float64(headerHeight + 10)
	for _, e := range entries {
		dc.SetColor(statusColors[e.status])
		dc.DrawRectangle(x, y, 14, 14)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(e.label, x+20, y+7, 0, 0.5)
		y += 24
	}
}
