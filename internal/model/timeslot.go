package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusPending   SlotStatus = "pending"
	SlotStatusApproved  SlotStatus = "approved"
	SlotStatusRejected  SlotStatus = "rejected"
)

// TimeSlot is a bookable time window for a live session. Stored in UTC,
// displayed in the platform timezone.
type TimeSlot struct {
	ID              int64      `json:"id"`
	GradeID         int64      `json:"grade_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	Status          SlotStatus `json:"status"`
	TeacherID       *int64     `json:"teacher_id,omitempty"`
	LectureID       *int64     `json:"lecture_id,omitempty"`
	RequestNotes    string     `json:"request_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	RequestedAt     *time.Time `json:"requested_at,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	BatchID         *uuid.UUID `json:"batch_id,omitempty"` // bulk-generation batch
	CreatedAt       time.Time  `json:"created_at"`
}

// Occupies reports whether the slot counts as holding its day for booking
// policy: pending and approved requests occupy, available and rejected do not.
func (s *TimeSlot) Occupies() bool {
	return s.Status == SlotStatusPending || s.Status == SlotStatusApproved
}

func (s *TimeSlot) IsPending() bool {
	return s.Status == SlotStatusPending
}

func (s *TimeSlot) IsApproved() bool {
	return s.Status == SlotStatusApproved
}

// SlotStats is the aggregate the admin dashboard polls.
type SlotStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
}
