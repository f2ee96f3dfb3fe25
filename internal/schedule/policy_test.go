package schedule

import (
	"testing"
	"time"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/stretchr/testify/assert"
)

func slotAt(id, gradeID int64, start time.Time, status model.SlotStatus) *model.TimeSlot {
	return &model.TimeSlot{
		ID:        id,
		GradeID:   gradeID,
		StartTime: start.UTC(),
		EndTime:   start.Add(time.Hour).UTC(),
		Status:    status,
	}
}

func TestIsDayLocked(t *testing.T) {
	day := time.Date(2024, time.June, 2, 10, 0, 0, 0, cairo)
	sameDay := slotAt(1, 5, time.Date(2024, time.June, 2, 14, 0, 0, 0, cairo), model.SlotStatusPending)
	otherDay := slotAt(2, 5, time.Date(2024, time.June, 3, 14, 0, 0, 0, cairo), model.SlotStatusApproved)
	otherGrade := slotAt(3, 6, time.Date(2024, time.June, 2, 14, 0, 0, 0, cairo), model.SlotStatusApproved)
	rejected := slotAt(4, 5, time.Date(2024, time.June, 2, 16, 0, 0, 0, cairo), model.SlotStatusRejected)

	t.Run("multiple mode never locks", func(t *testing.T) {
		assert.False(t, IsDayLocked(day, 5, model.BookingModeMultiple, []*model.TimeSlot{sameDay}, cairo, false))
	})

	t.Run("bypass disables locking", func(t *testing.T) {
		assert.True(t, IsDayLocked(day, 5, model.BookingModeIndividual, []*model.TimeSlot{sameDay}, cairo, false))
		assert.False(t, IsDayLocked(day, 5, model.BookingModeIndividual, []*model.TimeSlot{sameDay}, cairo, true))
	})

	t.Run("individual mode locks on same date and grade", func(t *testing.T) {
		assert.True(t, IsDayLocked(day, 5, model.BookingModeIndividual, []*model.TimeSlot{sameDay}, cairo, false))
	})

	t.Run("different day or grade does not lock", func(t *testing.T) {
		assert.False(t, IsDayLocked(day, 5, model.BookingModeIndividual, []*model.TimeSlot{otherDay, otherGrade}, cairo, false))
	})

	t.Run("rejected and available entries do not occupy", func(t *testing.T) {
		available := slotAt(5, 5, time.Date(2024, time.June, 2, 18, 0, 0, 0, cairo), model.SlotStatusAvailable)
		assert.False(t, IsDayLocked(day, 5, model.BookingModeIndividual, []*model.TimeSlot{rejected, available, nil}, cairo, false))
	})

	t.Run("date comparison happens in local time", func(t *testing.T) {
		// 23:30 local on June 2 is June 2 UTC+0 too, but 00:30 local on
		// June 3 is still June 2 in UTC. The lock must follow the wall clock.
		lateLocal := slotAt(6, 5, time.Date(2024, time.June, 3, 0, 30, 0, 0, cairo), model.SlotStatusPending)
		june3 := time.Date(2024, time.June, 3, 9, 0, 0, 0, cairo)
		assert.True(t, IsDayLocked(june3, 5, model.BookingModeIndividual, []*model.TimeSlot{lateLocal}, cairo, false))
		assert.False(t, IsDayLocked(day, 5, model.BookingModeIndividual, []*model.TimeSlot{lateLocal}, cairo, false))
	})
}

func TestSlotLock(t *testing.T) {
	pending := slotAt(10, 5, time.Date(2024, time.June, 2, 9, 0, 0, 0, cairo), model.SlotStatusPending)
	rejected := slotAt(11, 5, time.Date(2024, time.June, 2, 10, 0, 0, 0, cairo), model.SlotStatusRejected)
	approved := slotAt(12, 5, time.Date(2024, time.June, 2, 11, 0, 0, 0, cairo), model.SlotStatusApproved)
	actor := []*model.TimeSlot{pending, rejected, approved, nil}

	assert.Equal(t, LockOwnRequest, SlotLock(10, actor))
	assert.Equal(t, LockOwnRequest, SlotLock(12, actor))
	assert.Equal(t, LockNone, SlotLock(11, actor), "a rejected request does not lock the slot")
	assert.Equal(t, LockNone, SlotLock(99, actor))
	assert.Equal(t, LockNone, SlotLock(10, nil))
}
