package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/render"
	"github.com/lessonhub/scheduler/internal/repository"
	"github.com/lessonhub/scheduler/internal/service"
)

// GetScheduleConfig returns the whole configuration blob.
func (h *Handler) GetScheduleConfig(c *fiber.Ctx) error {
	return JsonResponse(c, fiber.StatusOK, true, "Schedule config fetched", h.schedule.Config())
}

// PutScheduleConfig replaces the configuration blob. The save is synchronous
// and broadcast to all consumers before the response returns.
func (h *Handler) PutScheduleConfig(c *fiber.Ctx) error {
	var cfg model.ScheduleConfig
	if err := c.BodyParser(&cfg); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}

	if err := h.schedule.UpdateConfig(c.Context(), cfg); err != nil {
		if errors.Is(err, service.ErrInvalidConfig) {
			return ValidationErrorResponse(c, map[string]string{"config": err.Error()})
		}
		// storage failure, not the admin's fault
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Schedule config saved", h.schedule.Config())
}

type generateTermRequest struct {
	GradeID int64 `json:"grade_id"`
}

// GenerateTermSlots triggers the server-side semester generation, for one
// grade or for all configured grades when grade_id is omitted.
func (h *Handler) GenerateTermSlots(c *fiber.Ctx) error {
	var req generateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}

	if req.GradeID != 0 {
		result, err := h.schedule.GenerateForTerm(c.Context(), req.GradeID)
		if err != nil {
			return serviceError(c, err, nil)
		}
		return JsonResponse(c, fiber.StatusOK, true, "Term slots generated", result)
	}

	results := h.schedule.GenerateForAllGrades(c.Context())
	return JsonResponse(c, fiber.StatusOK, true, "Term slots generated", results)
}

// WeekImage renders a grade's week as a PNG for the dashboard preview.
func (h *Handler) WeekImage(c *fiber.Ctx) error {
	gradeID := int64(c.QueryInt("grade_id"))
	if gradeID == 0 {
		return ValidationErrorResponse(c, map[string]string{"grade_id": "grade_id is required"})
	}

	loc := h.schedule.Config().Location()
	anchor := time.Now().In(loc)
	if q := c.Query("date"); q != "" {
		t, err := time.ParseInLocation("2006-01-02", q, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"date": "expected YYYY-MM-DD"})
		}
		anchor = t
	}

	weekStart := anchor.AddDate(0, 0, -int(anchor.In(loc).Weekday()))
	slots, err := h.slots.List(c.Context(), repository.ListFilter{
		GradeID: gradeID,
		From:    time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, loc),
		To:      time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 7),
	})
	if err != nil {
		return serviceError(c, err, nil)
	}

	png, err := render.WeekImage(anchor, slots, loc)
	if err != nil {
		return serviceError(c, err, nil)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
