package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cairo = time.FixedZone("EET", 2*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, cairo)
}

func TestGenerateSingleSunday(t *testing.T) {
	// 2024-06-02 is a Sunday.
	windows, reason := Generate(GenerateParams{
		StartDate:           date(2024, time.June, 2),
		EndDate:             date(2024, time.June, 2),
		Weekdays:            []time.Weekday{time.Sunday},
		SlotDurationMinutes: 60,
		DailyStartTime:      "08:00",
		DailyEndTime:        "10:00",
		Location:            cairo,
	})

	require.Equal(t, ReasonNone, reason)
	require.Len(t, windows, 2)

	assert.Equal(t, time.Date(2024, time.June, 2, 8, 0, 0, 0, cairo).UTC(), windows[0].StartTime)
	assert.Equal(t, time.Date(2024, time.June, 2, 9, 0, 0, 0, cairo).UTC(), windows[0].EndTime)
	assert.Equal(t, time.Date(2024, time.June, 2, 9, 0, 0, 0, cairo).UTC(), windows[1].StartTime)
	assert.Equal(t, time.Date(2024, time.June, 2, 10, 0, 0, 0, cairo).UTC(), windows[1].EndTime)
}

func TestGenerateEmptyReasons(t *testing.T) {
	base := GenerateParams{
		StartDate:           date(2024, time.June, 1),
		EndDate:             date(2024, time.June, 30),
		Weekdays:            []time.Weekday{time.Monday},
		SlotDurationMinutes: 60,
		DailyStartTime:      "08:00",
		DailyEndTime:        "12:00",
		Location:            cairo,
	}

	tests := []struct {
		name   string
		mutate func(p *GenerateParams)
		want   Reason
	}{
		{"missing dates", func(p *GenerateParams) { p.StartDate = time.Time{}; p.EndDate = time.Time{} }, ReasonNoDateRange},
		{"missing end date", func(p *GenerateParams) { p.EndDate = time.Time{} }, ReasonNoDateRange},
		{"no weekdays", func(p *GenerateParams) { p.Weekdays = nil }, ReasonNoWeekdays},
		{"zero duration", func(p *GenerateParams) { p.SlotDurationMinutes = 0 }, ReasonNoDailyHours},
		{"missing daily hours", func(p *GenerateParams) { p.DailyStartTime = ""; p.DailyEndTime = "" }, ReasonNoDailyHours},
		{"unparseable daily hours", func(p *GenerateParams) { p.DailyStartTime = "morning" }, ReasonNoDailyHours},
		{"inverted daily hours", func(p *GenerateParams) { p.DailyStartTime = "10:00"; p.DailyEndTime = "09:00" }, ReasonBadDailyHours},
		{"equal daily hours", func(p *GenerateParams) { p.DailyStartTime = "09:00"; p.DailyEndTime = "09:00" }, ReasonBadDailyHours},
		{"inverted date range", func(p *GenerateParams) { p.StartDate = date(2024, time.July, 1); p.EndDate = date(2024, time.June, 1) }, ReasonStartAfterEnd},
		{"no matching weekdays", func(p *GenerateParams) {
			// 2024-06-03 is a Monday, the range covers Tue-Wed only.
			p.StartDate = date(2024, time.June, 4)
			p.EndDate = date(2024, time.June, 5)
		}, ReasonNoMatchingDays},
		{"duration longer than window", func(p *GenerateParams) {
			p.SlotDurationMinutes = 300
			p.DailyStartTime = "08:00"
			p.DailyEndTime = "10:00"
		}, ReasonNoMatchingDays},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			windows, reason := Generate(p)
			assert.Nil(t, windows)
			assert.Equal(t, tc.want, reason)
		})
	}
}

func TestGenerateRespectsSlotCap(t *testing.T) {
	windows, reason := Generate(GenerateParams{
		StartDate:           date(2024, time.January, 1),
		EndDate:             date(2034, time.January, 1),
		Weekdays:            []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
		SlotDurationMinutes: 30,
		DailyStartTime:      "06:00",
		DailyEndTime:        "22:00",
		Location:            cairo,
	})

	require.Equal(t, ReasonNone, reason)
	assert.LessOrEqual(t, len(windows), maxGeneratedSlots)
	assert.Equal(t, maxGeneratedSlots, len(windows))
}

func TestGenerateIdempotent(t *testing.T) {
	p := GenerateParams{
		StartDate:           date(2024, time.June, 1),
		EndDate:             date(2024, time.June, 14),
		Weekdays:            []time.Weekday{time.Sunday, time.Tuesday},
		SlotDurationMinutes: 45,
		DailyStartTime:      "09:00",
		DailyEndTime:        "13:00",
		Location:            cairo,
	}

	first, reason1 := Generate(p)
	second, reason2 := Generate(p)

	require.Equal(t, ReasonNone, reason1)
	require.Equal(t, reason1, reason2)
	assert.Equal(t, first, second)
}

func TestGenerateMembershipInvariants(t *testing.T) {
	p := GenerateParams{
		StartDate:           date(2024, time.June, 1),
		EndDate:             date(2024, time.June, 30),
		Weekdays:            []time.Weekday{time.Monday, time.Wednesday},
		SlotDurationMinutes: 60,
		DailyStartTime:      "10:00",
		DailyEndTime:        "14:00",
		Location:            cairo,
	}

	windows, reason := Generate(p)
	require.Equal(t, ReasonNone, reason)
	require.NotEmpty(t, windows)

	selected := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true}
	for i, w := range windows {
		local := w.StartTime.In(cairo)
		assert.True(t, selected[local.Weekday()], "slot %d falls on %s", i, local.Weekday())
		assert.Equal(t, 60*time.Minute, w.EndTime.Sub(w.StartTime))

		mins := local.Hour()*60 + local.Minute()
		assert.GreaterOrEqual(t, mins, 10*60)
		assert.LessOrEqual(t, mins+60, 14*60)

		if i > 0 {
			assert.False(t, w.StartTime.Before(windows[i-1].StartTime), "windows must be chronological")
		}
	}
}

func TestGenerateConvertsLocalToUTC(t *testing.T) {
	windows, reason := Generate(GenerateParams{
		StartDate:           date(2024, time.June, 2),
		EndDate:             date(2024, time.June, 2),
		Weekdays:            []time.Weekday{time.Sunday},
		SlotDurationMinutes: 60,
		DailyStartTime:      "08:00",
		DailyEndTime:        "09:00",
		Location:            cairo,
	})

	require.Equal(t, ReasonNone, reason)
	require.Len(t, windows, 1)

	// 08:00 at UTC+2 is 06:00 UTC.
	assert.Equal(t, time.UTC, windows[0].StartTime.Location())
	assert.Equal(t, 6, windows[0].StartTime.Hour())
	assert.Equal(t, 7, windows[0].EndTime.Hour())
}

func TestGenerateNilLocationDefaultsToUTC(t *testing.T) {
	windows, reason := Generate(GenerateParams{
		StartDate:           time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
		Weekdays:            []time.Weekday{time.Sunday},
		SlotDurationMinutes: 60,
		DailyStartTime:      "08:00",
		DailyEndTime:        "09:00",
	})

	require.Equal(t, ReasonNone, reason)
	require.Len(t, windows, 1)
	assert.Equal(t, 8, windows[0].StartTime.Hour())
}

func TestGenerateIncludesBoundaryDays(t *testing.T) {
	// End date carries a time of day; the last day must still be included.
	windows, reason := Generate(GenerateParams{
		StartDate:           time.Date(2024, time.June, 2, 14, 30, 0, 0, cairo),
		EndDate:             time.Date(2024, time.June, 9, 0, 0, 1, 0, cairo),
		Weekdays:            []time.Weekday{time.Sunday},
		SlotDurationMinutes: 60,
		DailyStartTime:      "08:00",
		DailyEndTime:        "09:00",
		Location:            cairo,
	})

	require.Equal(t, ReasonNone, reason)
	require.Len(t, windows, 2)
	assert.Equal(t, 2, windows[0].StartTime.In(cairo).Day())
	assert.Equal(t, 9, windows[1].StartTime.In(cairo).Day())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"0800", 0, true},
		{"08:30:00", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tc := range tests {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
		} else {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}
