package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gofiber/fiber/v2"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository"
	"github.com/lessonhub/scheduler/internal/schedule"
	"github.com/lessonhub/scheduler/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	slots    *service.SlotService
	schedule *service.ScheduleService
	units    *service.UnitService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(
	slots *service.SlotService,
	scheduleService *service.ScheduleService,
	units *service.UnitService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		slots:    slots,
		schedule: scheduleService,
		units:    units,
		validate: validator.New(),
		logger:   logger,
	}
}

type previewRequest struct {
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Weekdays            []int  `json:"weekdays"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	DailyStartTime      string `json:"daily_start_time"`
	DailyEndTime        string `json:"daily_end_time"`
}

// Preview runs the client-side bulk generator. Incomplete selections are not
// validation failures: they come back as an empty list with a categorized
// reason the UI turns into a specific message.
func (h *Handler) Preview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}

	loc := h.schedule.Config().Location()

	params := schedule.GenerateParams{
		SlotDurationMinutes: req.SlotDurationMinutes,
		DailyStartTime:      req.DailyStartTime,
		DailyEndTime:        req.DailyEndTime,
		Location:            loc,
	}
	for _, wd := range req.Weekdays {
		if wd < 0 || wd > 6 {
			return ValidationErrorResponse(c, map[string]string{"weekdays": "weekday must be between 0 and 6"})
		}
		params.Weekdays = append(params.Weekdays, time.Weekday(wd))
	}

	if req.StartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"start_date": "expected YYYY-MM-DD"})
		}
		params.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", req.EndDate, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"end_date": "expected YYYY-MM-DD"})
		}
		params.EndDate = end
	}

	result := h.slots.Preview(params)
	return JsonResponse(c, fiber.StatusOK, true, "Preview generated", result)
}

type slotWindow struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type bulkCreateRequest struct {
	GradeID int64        `json:"grade_id" validate:"required"`
	Slots   []slotWindow `json:"slots" validate:"required,min=1,dive"`
}

// BulkCreate persists a submitted preview. Partial success is success: the
// response always carries created and skipped counts; only a batch where
// every window conflicts becomes a 409.
func (h *Handler) BulkCreate(c *fiber.Ctx) error {
	var req bulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": err.Error()})
	}

	windows := make([]schedule.Window, 0, len(req.Slots))
	for _, s := range req.Slots {
		if !s.StartTime.Before(s.EndTime) {
			return ValidationErrorResponse(c, map[string]string{"slots": "start_time must be before end_time"})
		}
		windows = append(windows, schedule.Window{StartTime: s.StartTime.UTC(), EndTime: s.EndTime.UTC()})
	}

	result, err := h.slots.BulkCreate(c.Context(), req.GradeID, windows)
	if err != nil {
		return serviceError(c, err, result)
	}
	return JsonResponse(c, fiber.StatusCreated, true, "Slots created", result)
}

type createSlotRequest struct {
	GradeID   int64     `json:"grade_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

func (h *Handler) CreateSlot(c *fiber.Ctx) error {
	var req createSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": err.Error()})
	}
	if !req.StartTime.Before(req.EndTime) {
		return ValidationErrorResponse(c, map[string]string{"start_time": "must be before end_time"})
	}

	slot, err := h.slots.Create(c.Context(), req.GradeID, req.StartTime, req.EndTime)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusCreated, true, "Slot created", slot)
}

// DeleteBatch removes every still-available slot of a generation batch, the
// admin's undo for a bulk create gone wrong.
func (h *Handler) DeleteBatch(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Params("batchId"))
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"batchId": "invalid batch id"})
	}

	count, err := h.slots.DeleteBatch(c.Context(), batchID)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Batch deleted", fiber.Map{"deleted_count": count})
}

// ListSlots returns slots filtered by status, grade, teacher and date range.
func (h *Handler) ListSlots(c *fiber.Ctx) error {
	var filter repository.ListFilter

	if status := c.Query("status"); status != "" {
		filter.Status = model.SlotStatus(status)
	}
	filter.GradeID = int64(c.QueryInt("grade_id"))
	filter.TeacherID = int64(c.QueryInt("teacher_id"))

	loc := h.schedule.Config().Location()
	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"from": "expected YYYY-MM-DD"})
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"to": "expected YYYY-MM-DD"})
		}
		filter.To = t.AddDate(0, 0, 1)
	}

	slots, err := h.slots.List(c.Context(), filter)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slots fetched", slots)
}

func (h *Handler) GetSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	slot, err := h.slots.GetByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot fetched", slot)
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.slots.Stats(c.Context(), int64(c.QueryInt("grade_id")))
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Stats fetched", stats)
}

type updateSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

func (h *Handler) UpdateSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	var req updateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": err.Error()})
	}

	slot, err := h.slots.Update(c.Context(), id, req.StartTime, req.EndTime)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot updated", slot)
}

func (h *Handler) DeleteSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	if err := h.slots.Delete(c.Context(), id); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot deleted", nil)
}

type requestSlotRequest struct {
	LectureID int64  `json:"lecture_id" validate:"required"`
	Notes     string `json:"notes"`
	Bypass    bool   `json:"bypass"` // extra-class override, skips booking policy
}

// RequestSlot is the teacher's available→pending transition.
func (h *Handler) RequestSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	var req requestSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"lecture_id": "a lecture must be attached"})
	}

	slot, err := h.slots.Request(c.Context(), id, service.RequestOptions{
		TeacherID: userID(c),
		LectureID: req.LectureID,
		Notes:     req.Notes,
		Bypass:    req.Bypass,
	})
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot requested", slot)
}

func (h *Handler) ApproveSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	slot, err := h.slots.Approve(c.Context(), id, userID(c))
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot approved", slot)
}

type rejectSlotRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *Handler) RejectSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	var req rejectSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationErrorResponse(c, map[string]string{"reason": "rejection reason is required"})
	}

	slot, err := h.slots.Reject(c.Context(), id, userID(c), req.Reason)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot rejected", slot)
}

func (h *Handler) CancelSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	if err := h.slots.Cancel(c.Context(), id, userID(c)); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Request canceled", nil)
}

func (h *Handler) CancelAllPending(c *fiber.Ctx) error {
	count, err := h.slots.CancelAllPending(c.Context(), userID(c))
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Pending requests canceled", fiber.Map{"canceled_count": count})
}

func (h *Handler) ReopenSlot(c *fiber.Ctx) error {
	id, err := slotID(c)
	if err != nil {
		return ValidationErrorResponse(c, map[string]string{"id": "invalid slot id"})
	}

	if err := h.slots.ReopenRejected(c.Context(), id); err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Slot reopened", nil)
}

// Availability is the teacher's booking view: term-gated available slots
// annotated with day and own-request locks.
func (h *Handler) Availability(c *fiber.Ctx) error {
	gradeID := int64(c.QueryInt("grade_id"))
	if gradeID == 0 {
		return ValidationErrorResponse(c, map[string]string{"grade_id": "grade_id is required"})
	}

	loc := h.schedule.Config().Location()
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 28)

	if q := c.Query("from"); q != "" {
		t, err := time.ParseInLocation("2006-01-02", q, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"from": "expected YYYY-MM-DD"})
		}
		from = t
	}
	if q := c.Query("to"); q != "" {
		t, err := time.ParseInLocation("2006-01-02", q, loc)
		if err != nil {
			return ValidationErrorResponse(c, map[string]string{"to": "expected YYYY-MM-DD"})
		}
		to = t.AddDate(0, 0, 1)
	}

	entries, err := h.slots.Availability(c.Context(), gradeID, userID(c), from, to)
	if err != nil {
		return serviceError(c, err, nil)
	}
	return JsonResponse(c, fiber.StatusOK, true, "Availability fetched", entries)
}

func slotID(c *fiber.Ctx) (int64, error) {
	return paramID(c, "id")
}
