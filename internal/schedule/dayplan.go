package schedule

import (
	"time"

	"github.com/lessonhub/scheduler/internal/model"
)

// ExpandDay turns a grade's day config into concrete slot windows for one
// calendar date. Unlike the bulk generator it honors the config's breaks
// (candidates overlapping a break are skipped) and gap (inserted between
// consecutive slots). Inactive configs and dates on a different weekday than
// implied by the caller simply expand to nothing.
func ExpandDay(cfg model.DayScheduleConfig, date time.Time, loc *time.Location) []Window {
	if !cfg.IsActive || cfg.SlotDurationMinutes <= 0 {
		return nil
	}
	startMin, err := parseClock(cfg.StartTime)
	if err != nil {
		return nil
	}
	endMin, err := parseClock(cfg.EndTime)
	if err != nil {
		return nil
	}
	if startMin >= endMin {
		return nil
	}

	if loc == nil {
		loc = time.UTC
	}
	day := dayStart(date, loc)

	return appendDaySlots(nil, day, startMin, endMin, cfg.SlotDurationMinutes, cfg.GapMinutes, parseBreaks(cfg.Breaks), loc)
}

// parseBreaks drops malformed or inverted intervals rather than failing the
// whole expansion; the admin UI validates them, this is the last line.
func parseBreaks(breaks []model.ClockInterval) []minuteInterval {
	var out []minuteInterval
	for _, b := range breaks {
		start, err := parseClock(b.Start)
		if err != nil {
			continue
		}
		end, err := parseClock(b.End)
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		out = append(out, minuteInterval{start: start, end: end})
	}
	return out
}
