package schedule

import (
	"testing"
	"time"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeDay(start, end string, duration int) model.DayScheduleConfig {
	return model.DayScheduleConfig{
		IsActive:            true,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: duration,
	}
}

func TestExpandDayBasic(t *testing.T) {
	day := date(2024, time.June, 2)
	windows := ExpandDay(activeDay("08:00", "11:00", 60), day, cairo)

	require.Len(t, windows, 3)
	assert.Equal(t, time.Date(2024, time.June, 2, 8, 0, 0, 0, cairo).UTC(), windows[0].StartTime)
	assert.Equal(t, time.Date(2024, time.June, 2, 11, 0, 0, 0, cairo).UTC(), windows[2].EndTime)
}

func TestExpandDaySkipsBreaks(t *testing.T) {
	cfg := activeDay("08:00", "12:00", 60)
	cfg.Breaks = []model.ClockInterval{{Start: "09:30", End: "10:30"}}

	windows := ExpandDay(cfg, date(2024, time.June, 2), cairo)

	// 09:00-10:00 and 10:00-11:00 both overlap the break; 08:00, 11:00 survive.
	require.Len(t, windows, 2)
	assert.Equal(t, 8, windows[0].StartTime.In(cairo).Hour())
	assert.Equal(t, 11, windows[1].StartTime.In(cairo).Hour())
}

func TestExpandDayBreakBoundaryDoesNotOverlap(t *testing.T) {
	cfg := activeDay("08:00", "10:00", 60)
	cfg.Breaks = []model.ClockInterval{{Start: "09:00", End: "09:00"}}

	// Inverted or empty break intervals are dropped, not applied.
	windows := ExpandDay(cfg, date(2024, time.June, 2), cairo)
	assert.Len(t, windows, 2)

	cfg.Breaks = []model.ClockInterval{{Start: "10:00", End: "11:00"}}
	windows = ExpandDay(cfg, date(2024, time.June, 2), cairo)
	assert.Len(t, windows, 2, "a break starting exactly at a slot's end must not remove it")
}

func TestExpandDayHonorsGap(t *testing.T) {
	cfg := activeDay("08:00", "11:00", 60)
	cfg.GapMinutes = 30

	windows := ExpandDay(cfg, date(2024, time.June, 2), cairo)

	// 08:00-09:00, 09:30-10:30; 11:00 start would exceed the window.
	require.Len(t, windows, 2)
	assert.Equal(t, "08:00", windows[0].StartTime.In(cairo).Format("15:04"))
	assert.Equal(t, "09:30", windows[1].StartTime.In(cairo).Format("15:04"))
}

func TestExpandDayInactiveOrInvalid(t *testing.T) {
	day := date(2024, time.June, 2)

	inactive := activeDay("08:00", "12:00", 60)
	inactive.IsActive = false
	assert.Nil(t, ExpandDay(inactive, day, cairo))

	assert.Nil(t, ExpandDay(activeDay("08:00", "12:00", 0), day, cairo))
	assert.Nil(t, ExpandDay(activeDay("12:00", "08:00", 60), day, cairo))
	assert.Nil(t, ExpandDay(activeDay("bad", "12:00", 60), day, cairo))
}

func TestExpandDayDropsMalformedBreaks(t *testing.T) {
	cfg := activeDay("08:00", "10:00", 60)
	cfg.Breaks = []model.ClockInterval{
		{Start: "oops", End: "09:00"},
		{Start: "09:30", End: "09:00"},
	}

	windows := ExpandDay(cfg, date(2024, time.June, 2), cairo)
	assert.Len(t, windows, 2)
}
