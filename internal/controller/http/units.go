package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lessonhub/scheduler/internal/model"
)

type unitRequest struct {
	Title       model.LocalizedText `json:"title"`
	IsPublished bool                `json:"is_published"`
}

func (h *Handler) CreateUnit(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"courseId": "invalid course id"})
	}

	var req unitRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if req.Title.IsZero() {
		return ValidationErrorResponse(c, map[string]string{"title": "title is required"})
	}

	unit, err := h.units.CreateUnit(c.Context(), courseID, req.Title, req.IsPublished)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusCreated, true, "Unit created", unit)
}

func (h *Handler) ListUnits(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"courseId": "invalid course id"})
	}

	units, err := h.units.GetUnits(c.Context(), courseID)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Units fetched", units)
}

func (h *Handler) UpdateUnit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid unit id"})
	}

	var req unitRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}

	unit, err := h.units.UpdateUnit(c.Context(), id, req.Title, req.IsPublished)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Unit updated", unit)
}

func (h *Handler) DeleteUnit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid unit id"})
	}

	if err := h.units.DeleteUnit(c.Context(), id); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Unit deleted", nil)
}

type reorderRequest struct {
	OrderedIDs []int64 `json:"ordered_ids" validate:"required,min=1"`
}

// ReorderUnits takes the complete ordered id list the client computed after
// a drag, last writer wins.
func (h *Handler) ReorderUnits(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"courseId": "invalid course id"})
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"ordered_ids": "ordered_ids is required"})
	}

	if err := h.units.ReorderUnits(c.Context(), courseID, req.OrderedIDs); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Units reordered", nil)
}

type lectureRequest struct {
	CourseID int64               `json:"course_id"`
	UnitID   *int64              `json:"unit_id"`
	Title    model.LocalizedText `json:"title"`
}

func (h *Handler) CreateLecture(c *fiber.Ctx) error {
	var req lectureRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if req.CourseID == 0 {
		return ValidationErrorResponse(c, map[string]string{"course_id": "course_id is required"})
	}
	if req.Title.IsZero() {
		return ValidationErrorResponse(c, map[string]string{"title": "title is required"})
	}

	lecture, err := h.units.CreateLecture(c.Context(), req.CourseID, req.UnitID, req.Title)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusCreated, true, "Lecture created", lecture)
}

func (h *Handler) ListLectures(c *fiber.Ctx) error {
	unitID, err := paramID(c, "unitId")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"unitId": "invalid unit id"})
	}

	lectures, err := h.units.GetLectures(c.Context(), unitID)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Lectures fetched", lectures)
}

func (h *Handler) ListUnassignedLectures(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"courseId": "invalid course id"})
	}

	lectures, err := h.units.GetUnassignedLectures(c.Context(), courseID)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Lectures fetched", lectures)
}

func (h *Handler) UpdateLecture(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid lecture id"})
	}

	var req lectureRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}

	lecture, err := h.units.UpdateLecture(c.Context(), id, req.Title)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Lecture updated", lecture)
}

func (h *Handler) DeleteLecture(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid lecture id"})
	}

	if err := h.units.DeleteLecture(c.Context(), id); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Lecture deleted", nil)
}

func (h *Handler) ReorderLectures(c *fiber.Ctx) error {
	unitID, err := paramID(c, "unitId")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"unitId": "invalid unit id"})
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"ordered_ids": "ordered_ids is required"})
	}

	if err := h.units.ReorderLectures(c.Context(), unitID, req.OrderedIDs); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Lectures reordered", nil)
}

type moveLectureRequest struct {
	UnitID   *int64 `json:"unit_id"` // nil moves to the unassigned pool
	Position int    `json:"position"`
}

func (h *Handler) MoveLecture(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid lecture id"})
	}

	var req moveLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}

	if err := h.units.MoveLecture(c.Context(), id, req.UnitID, req.Position); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Lecture moved", nil)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
