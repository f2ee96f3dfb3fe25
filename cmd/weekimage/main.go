// Renders a sample week image to week.png, useful for eyeballing layout
// changes without a running server.
package main

import (
	"log"
	"os"
	"time"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/render"
)

func main() {
	loc, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		loc = time.UTC
	}

	now := time.Now().In(loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	teacherID := int64(7)
	slots := []*model.TimeSlot{
		{ID: 1, GradeID: 1, StartTime: day.Add(9 * time.Hour).UTC(), EndTime: day.Add(10 * time.Hour).UTC(), Status: model.SlotStatusAvailable},
		{ID: 2, GradeID: 1, StartTime: day.Add(10 * time.Hour).UTC(), EndTime: day.Add(11 * time.Hour).UTC(), Status: model.SlotStatusPending, TeacherID: &teacherID},
		{ID: 3, GradeID: 1, StartTime: day.AddDate(0, 0, 2).Add(12 * time.Hour).UTC(), EndTime: day.AddDate(0, 0, 2).Add(13 * time.Hour).UTC(), Status: model.SlotStatusApproved, TeacherID: &teacherID},
		{ID: 4, GradeID: 1, StartTime: day.AddDate(0, 0, 4).Add(15 * time.Hour).UTC(), EndTime: day.AddDate(0, 0, 4).Add(16 * time.Hour).UTC(), Status: model.SlotStatusRejected},
	}

	png, err := render.WeekImage(now, slots, loc)
	if err != nil {
		log.Fatalf("render week image: %v", err)
	}

	if err := os.WriteFile("week.png", png, 0o644); err != nil {
		log.Fatalf("write week.png: %v", err)
	}
	log.Printf("wrote week.png (%d bytes)", len(png))
}
