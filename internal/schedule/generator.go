// Package schedule holds the pure scheduling engine: bulk slot generation,
// day-config expansion, booking policy and the slot lifecycle. Nothing in this
// package touches the network or the database.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is one generated slot candidate. Times are UTC.
type Window struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Reason categorizes why generation produced nothing, so the caller can show
// a specific message instead of a blank list.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonNoDateRange    Reason = "no-date-range"
	ReasonStartAfterEnd  Reason = "start-after-end"
	ReasonNoWeekdays     Reason = "no-weekdays"
	ReasonNoDailyHours   Reason = "no-daily-hours"
	ReasonBadDailyHours  Reason = "start-after-end-hours"
	ReasonNoMatchingDays Reason = "no-matching-days"
)

// Runaway guards. A shorter-than-requested result is valid, not a failure.
const (
	maxDayIterations  = 5000
	maxGeneratedSlots = 1000
)

// GenerateParams are the bulk generator inputs. StartDate and EndDate may
// carry any time of day; both are normalized to day boundaries in Location.
type GenerateParams struct {
	StartDate           time.Time
	EndDate             time.Time
	Weekdays            []time.Weekday // 0=Sunday
	SlotDurationMinutes int
	DailyStartTime      string // "HH:MM"
	DailyEndTime        string // "HH:MM"
	Location            *time.Location
}

// Generate produces the flat, chronologically ordered list of candidate slots
// for the given range. It is pure and idempotent: identical inputs yield an
// identical list. An empty result is a legitimate outcome, categorized by the
// returned Reason.
func Generate(p GenerateParams) ([]Window, Reason) {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return nil, ReasonNoDateRange
	}
	if p.DailyStartTime == "" || p.DailyEndTime == "" || p.SlotDurationMinutes <= 0 {
		return nil, ReasonNoDailyHours
	}
	if len(p.Weekdays) == 0 {
		return nil, ReasonNoWeekdays
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	// Normalize both ends to day boundaries so timezone truncation cannot
	// drop the first or last day.
	startDay := dayStart(p.StartDate, loc)
	endOfRange := dayEnd(p.EndDate, loc)
	if startDay.After(endOfRange) {
		return nil, ReasonStartAfterEnd
	}

	dailyStart, err := parseClock(p.DailyStartTime)
	if err != nil {
		return nil, ReasonNoDailyHours
	}
	dailyEnd, err := parseClock(p.DailyEndTime)
	if err != nil {
		return nil, ReasonNoDailyHours
	}
	if dailyStart >= dailyEnd {
		return nil, ReasonBadDailyHours
	}

	selected := make(map[time.Weekday]bool, len(p.Weekdays))
	for _, wd := range p.Weekdays {
		selected[wd] = true
	}

	var out []Window
	iterations := 0
	for day := startDay; !day.After(endOfRange) && iterations < maxDayIterations; day = day.AddDate(0, 0, 1) {
		iterations++
		if !selected[day.Weekday()] {
			continue
		}
		if len(out) >= maxGeneratedSlots {
			break
		}
		out = appendDaySlots(out, day, dailyStart, dailyEnd, p.SlotDurationMinutes, 0, nil, loc)
	}

	if len(out) == 0 {
		return nil, ReasonNoMatchingDays
	}
	return out, ReasonNone
}

// appendDaySlots walks a minute cursor over one day's working window and
// appends slots until the window or the global cap is exhausted. Candidates
// overlapping a break are skipped; gap spreads consecutive cursor steps.
func appendDaySlots(out []Window, day time.Time, startMin, endMin, duration, gap int, breaks []minuteInterval, loc *time.Location) []Window {
	for cursor := startMin; cursor+duration <= endMin; cursor += duration + gap {
		if len(out) >= maxGeneratedSlots {
			break
		}
		if overlapsAny(cursor, cursor+duration, breaks) {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), cursor/60, cursor%60, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day(), (cursor+duration)/60, (cursor+duration)%60, 0, 0, loc)
		out = append(out, Window{StartTime: start.UTC(), EndTime: end.UTC()})
	}
	return out
}

type minuteInterval struct {
	start int
	end   int
}

// overlapsAny checks the half-open candidate [start,end) against the breaks.
func overlapsAny(start, end int, breaks []minuteInterval) bool {
	for _, b := range breaks {
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func dayEnd(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}
