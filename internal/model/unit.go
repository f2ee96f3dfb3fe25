package model

import "time"

// Unit is an ordered grouping of lectures within a course. Order is unique
// among the course's units and defines display sequence.
type Unit struct {
	ID          int64         `json:"id"`
	CourseID    int64         `json:"course_id"`
	Title       LocalizedText `json:"title"`
	Order       int           `json:"order"`
	IsPublished bool          `json:"is_published"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
}

// UnitLecture belongs to at most one unit and carries its own order within
// that unit. A nil UnitID means the lecture is not yet assigned.
type UnitLecture struct {
	ID        int64         `json:"id"`
	CourseID  int64         `json:"course_id"`
	UnitID    *int64        `json:"unit_id,omitempty"`
	Title     LocalizedText `json:"title"`
	Order     int           `json:"order"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}
