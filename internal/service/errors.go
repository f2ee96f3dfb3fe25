package service

import "errors"

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotNotAvailable = errors.New("slot is not available")
	ErrSlotNotPending   = errors.New("slot is not pending")
	ErrSlotNotRejected  = errors.New("slot is not rejected")
	ErrNotSlotOwner     = errors.New("slot is requested by another teacher")
	ErrDayLocked        = errors.New("day already holds a booking for this grade")
	ErrOutsideTerm      = errors.New("slot is outside the academic term")
	ErrReasonRequired   = errors.New("rejection reason is required")
	ErrNothingToCreate  = errors.New("no slots to create")
	ErrAllConflicting   = errors.New("all slots conflict with existing ones")
	ErrLectureRequired  = errors.New("a lecture must be attached to the request")
)
