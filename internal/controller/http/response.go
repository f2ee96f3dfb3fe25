package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lessonhub/scheduler/internal/service"
)

// JsonResponse is the envelope every endpoint answers with.
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errs)
}

// conflictMessage is surfaced verbatim by the front end, which expects the
// Arabic overlap phrase first.
const conflictMessage = "تعارض في المواعيد مع حصص موجودة / Time conflict with existing slots"

// serviceError maps the services' typed errors onto the API's error taxonomy.
func serviceError(c *fiber.Ctx, err error, data interface{}) error {
	switch {
	case errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrUnitNotFound),
		errors.Is(err, service.ErrLectureNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, service.ErrAllConflicting):
		return JsonResponse(c, fiber.StatusConflict, false, conflictMessage, data)
	case errors.Is(err, service.ErrDayLocked),
		errors.Is(err, service.ErrOutsideTerm):
		return JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case errors.Is(err, service.ErrSlotNotAvailable),
		errors.Is(err, service.ErrSlotNotPending),
		errors.Is(err, service.ErrSlotNotRejected),
		errors.Is(err, service.ErrNotSlotOwner),
		errors.Is(err, service.ErrOrderMismatch),
		errors.Is(err, service.ErrNothingToCreate),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrLectureRequired):
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error", nil)
	}
}
