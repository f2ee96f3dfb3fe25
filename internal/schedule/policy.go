package schedule

import (
	"time"

	"github.com/lessonhub/scheduler/internal/model"
)

// LockKind distinguishes why a slot is unavailable to the current actor, so
// callers can show "my request" separately from "blocked by policy".
type LockKind string

const (
	LockNone       LockKind = ""
	LockByPolicy   LockKind = "policy"      // day occupied under individual mode
	LockOwnRequest LockKind = "own-request" // actor already holds this slot
)

// IsDayLocked decides whether a new booking on the given calendar date is
// blocked for a grade. bypass is the extra-class override path: it disables
// all locking. Under multiple mode the day is never locked; under individual
// mode any of the actor's existing pending or approved bookings on the same
// date and grade occupies the day. The result is advisory: the server-side
// create call remains the source of truth for real conflicts.
func IsDayLocked(date time.Time, gradeID int64, mode model.BookingMode, existing []*model.TimeSlot, loc *time.Location, bypass bool) bool {
	if bypass {
		return false
	}
	if mode != model.BookingModeIndividual {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.In(loc).Date()
	for _, slot := range existing {
		if slot == nil || slot.GradeID != gradeID || !slot.Occupies() {
			continue
		}
		sy, sm, sd := slot.StartTime.In(loc).Date()
		if sy == y && sm == m && sd == d {
			return true
		}
	}
	return false
}

// SlotLock reports whether the given slot is locked against the actor's own
// booking list: a non-rejected entry for the same slot means the actor already
// requested or holds it.
func SlotLock(slotID int64, actorSlots []*model.TimeSlot) LockKind {
	for _, slot := range actorSlots {
		if slot == nil || slot.ID != slotID {
			continue
		}
		if slot.Status != model.SlotStatusRejected && slot.Status != model.SlotStatusAvailable {
			return LockOwnRequest
		}
	}
	return LockNone
}
