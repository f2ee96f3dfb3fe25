package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicTermContains(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	term := AcademicTerm{StartDate: "2024-09-01", EndDate: "2024-12-31", IsActive: true}

	assert.True(t, term.Contains(time.Date(2024, time.September, 1, 0, 0, 0, 0, loc), loc))
	assert.True(t, term.Contains(time.Date(2024, time.December, 31, 23, 0, 0, 0, loc), loc), "end date is inclusive")
	assert.True(t, term.Contains(time.Date(2024, time.October, 15, 12, 0, 0, 0, loc), loc))
	assert.False(t, term.Contains(time.Date(2024, time.August, 31, 23, 59, 0, 0, loc), loc))
	assert.False(t, term.Contains(time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), loc))

	inactive := AcademicTerm{StartDate: "2024-09-01", EndDate: "2024-12-31"}
	assert.True(t, inactive.Contains(time.Date(2030, time.January, 1, 0, 0, 0, 0, loc), loc))

	unset := AcademicTerm{IsActive: true}
	assert.True(t, unset.Contains(time.Date(2030, time.January, 1, 0, 0, 0, 0, loc), loc))

	malformed := AcademicTerm{StartDate: "soon", EndDate: "later", IsActive: true}
	assert.True(t, malformed.Contains(time.Date(2030, time.January, 1, 0, 0, 0, 0, loc), loc))
}

func TestTermFor(t *testing.T) {
	global := AcademicTerm{StartDate: "2024-09-01", EndDate: "2025-01-15", IsActive: true}
	override := AcademicTerm{StartDate: "2024-10-01", EndDate: "2024-11-30", IsActive: true}

	cfg := ScheduleConfig{
		GlobalTerm: global,
		Grades: map[int64]GradeScheduleConfig{
			1: {Term: &override},
			2: {},
		},
	}

	assert.Equal(t, override, cfg.TermFor(1))
	assert.Equal(t, global, cfg.TermFor(2), "grade without an override inherits the global term")
	assert.Equal(t, global, cfg.TermFor(99))
}

func TestBookingModeFor(t *testing.T) {
	cfg := ScheduleConfig{
		GlobalBookingMode: BookingModeMultiple,
		Grades: map[int64]GradeScheduleConfig{
			1: {Days: map[int]DayScheduleConfig{
				0: {IsActive: true, BookingMode: BookingModeIndividual},
				1: {IsActive: true},
			}},
		},
	}

	assert.Equal(t, BookingModeIndividual, cfg.BookingModeFor(1, 0))
	assert.Equal(t, BookingModeMultiple, cfg.BookingModeFor(1, 1), "day without a mode falls back to global")
	assert.Equal(t, BookingModeMultiple, cfg.BookingModeFor(2, 0))

	assert.Equal(t, BookingModeIndividual, ScheduleConfig{}.BookingModeFor(1, 0), "individual is the final default")
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, ScheduleConfig{}.Location())
	assert.Equal(t, time.UTC, ScheduleConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, "Africa/Cairo", ScheduleConfig{Timezone: "Africa/Cairo"}.Location().String())
}

func TestTimeSlotOccupies(t *testing.T) {
	assert.False(t, (&TimeSlot{Status: SlotStatusAvailable}).Occupies())
	assert.True(t, (&TimeSlot{Status: SlotStatusPending}).Occupies())
	assert.True(t, (&TimeSlot{Status: SlotStatusApproved}).Occupies())
	assert.False(t, (&TimeSlot{Status: SlotStatusRejected}).Occupies())
}
