package model

import "time"

type BookingMode string

const (
	// BookingModeIndividual allows a grade one active booking per day.
	BookingModeIndividual BookingMode = "individual"
	// BookingModeMultiple puts no per-day cap on bookings.
	BookingModeMultiple BookingMode = "multiple"
)

// ClockInterval is a wall-clock interval, "HH:MM" inclusive start, exclusive end.
type ClockInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayScheduleConfig holds the admin-authored generation rules for one weekday
// of one grade.
type DayScheduleConfig struct {
	IsActive            bool            `json:"isActive"`
	StartTime           string          `json:"startTime"` // "HH:MM"
	EndTime             string          `json:"endTime"`   // "HH:MM"
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	GapMinutes          int             `json:"gapMinutes"`
	BookingMode         BookingMode     `json:"bookingMode"`
	Breaks              []ClockInterval `json:"breaks,omitempty"`
}

// AcademicTerm gates which dates are eligible for display and booking.
// An inactive or unset term imposes no restriction.
type AcademicTerm struct {
	StartDate string `json:"startDate"` // "YYYY-MM-DD"
	EndDate   string `json:"endDate"`   // "YYYY-MM-DD"
	IsActive  bool   `json:"isActive"`
}

// Contains reports whether t falls inside the term window (inclusive on both
// ends, evaluated on calendar dates in loc).
func (a AcademicTerm) Contains(t time.Time, loc *time.Location) bool {
	if !a.IsActive || a.StartDate == "" || a.EndDate == "" {
		return true
	}
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation("2006-01-02", a.StartDate, loc)
	if err != nil {
		return true
	}
	end, err := time.ParseInLocation("2006-01-02", a.EndDate, loc)
	if err != nil {
		return true
	}
	end = end.AddDate(0, 0, 1) // inclusive end date

	local := t.In(loc)
	return !local.Before(start) && local.Before(end)
}

// GradeScheduleConfig is one grade's overrides: per-weekday rules plus an
// optional term window that shadows the global one.
type GradeScheduleConfig struct {
	Days map[int]DayScheduleConfig `json:"days,omitempty"` // weekday 0=Sunday
	Term *AcademicTerm             `json:"term,omitempty"`
}

// ScheduleConfig is the whole configuration blob, persisted as a single key.
type ScheduleConfig struct {
	GlobalTerm        AcademicTerm                  `json:"globalTerm"`
	GlobalBookingMode BookingMode                   `json:"globalBookingMode"`
	Timezone          string                        `json:"timezone,omitempty"`
	Grades            map[int64]GradeScheduleConfig `json:"grades,omitempty"`
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		GlobalBookingMode: BookingModeIndividual,
		Grades:            map[int64]GradeScheduleConfig{},
	}
}

// DayConfig returns the rules for a grade's weekday, if configured.
func (c ScheduleConfig) DayConfig(gradeID int64, weekday int) (DayScheduleConfig, bool) {
	grade, ok := c.Grades[gradeID]
	if !ok {
		return DayScheduleConfig{}, false
	}
	day, ok := grade.Days[weekday]
	return day, ok
}

// TermFor resolves the effective term for a grade: the grade override when
// present, the global term otherwise.
func (c ScheduleConfig) TermFor(gradeID int64) AcademicTerm {
	if grade, ok := c.Grades[gradeID]; ok && grade.Term != nil {
		return *grade.Term
	}
	return c.GlobalTerm
}

// BookingModeFor resolves the booking mode for a grade's weekday, falling back
// to the global mode when the day is not configured.
func (c ScheduleConfig) BookingModeFor(gradeID int64, weekday int) BookingMode {
	if day, ok := c.DayConfig(gradeID, weekday); ok && day.BookingMode != "" {
		return day.BookingMode
	}
	if c.GlobalBookingMode != "" {
		return c.GlobalBookingMode
	}
	return BookingModeIndividual
}

// Location resolves the configured timezone, UTC when unset or invalid.
func (c ScheduleConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
