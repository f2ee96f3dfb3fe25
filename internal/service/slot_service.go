package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository"
	"github.com/lessonhub/scheduler/internal/schedule"
	"github.com/lessonhub/scheduler/internal/schedule/configstore"
	"go.uber.org/zap"
)

// Notifier receives lifecycle events; implementations must never block the
// request path on delivery.
type Notifier interface {
	SlotRequested(ctx context.Context, slot *model.TimeSlot)
	SlotApproved(ctx context.Context, slot *model.TimeSlot)
	SlotRejected(ctx context.Context, slot *model.TimeSlot)
}

// PreviewRangeWarnDays is the range length above which the preview response
// carries a warning. The generator itself never enforces it.
const PreviewRangeWarnDays = 90

type SlotService struct {
	pool     *pgxpool.Pool
	slotRepo *repository.SlotRepository
	configs  *configstore.Manager
	notifier Notifier
	logger   *zap.Logger
}

func NewSlotService(
	pool *pgxpool.Pool,
	slotRepo *repository.SlotRepository,
	configs *configstore.Manager,
	notifier Notifier,
	logger *zap.Logger,
) *SlotService {
	return &SlotService{
		pool:     pool,
		slotRepo: slotRepo,
		configs:  configs,
		notifier: notifier,
		logger:   logger,
	}
}

// PreviewResult is the client-side bulk generator output: the candidate
// windows plus the categorized reason when the list is empty.
type PreviewResult struct {
	Slots        []schedule.Window `json:"slots"`
	Reason       schedule.Reason   `json:"reason,omitempty"`
	RangeWarning bool              `json:"range_warning,omitempty"`
}

// Preview runs the pure bulk generator over the admin's selection. The result
// is not persisted; the caller submits it via BulkCreate.
func (s *SlotService) Preview(p schedule.GenerateParams) PreviewResult {
	if p.Location == nil {
		p.Location = s.configs.Current().Location()
	}
	slots, reason := schedule.Generate(p)

	warning := false
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
		warning = p.EndDate.Sub(p.StartDate) > PreviewRangeWarnDays*24*time.Hour
	}

	return PreviewResult{Slots: slots, Reason: reason, RangeWarning: warning}
}

// BulkCreateResult reports partial success: how many windows were persisted
// and how many were skipped as overlapping.
type BulkCreateResult struct {
	BatchID      uuid.UUID `json:"batch_id"`
	CreatedCount int       `json:"created_count"`
	SkippedCount int       `json:"skipped_count"`
}

// BulkCreate persists generated windows as available slots, skipping
// overlaps. When every window conflicts the result still carries the counts
// and the error is ErrAllConflicting, which the API maps to 409.
func (s *SlotService) BulkCreate(ctx context.Context, gradeID int64, windows []schedule.Window) (*BulkCreateResult, error) {
	if len(windows) == 0 {
		return nil, ErrNothingToCreate
	}

	batchID := uuid.New()
	created, skipped, err := s.slotRepo.BulkCreate(ctx, gradeID, windows, batchID)
	if err != nil {
		return nil, fmt.Errorf("bulk create slots: %w", err)
	}

	result := &BulkCreateResult{BatchID: batchID, CreatedCount: created, SkippedCount: skipped}

	s.logger.Info("Bulk slot creation finished",
		zap.Int64("grade_id", gradeID),
		zap.String("batch_id", batchID.String()),
		zap.Int("created", created),
		zap.Int("skipped", skipped),
	)

	if created == 0 && skipped > 0 {
		return result, ErrAllConflicting
	}
	return result, nil
}

// Create adds a single available slot (admin path).
func (s *SlotService) Create(ctx context.Context, gradeID int64, start, end time.Time) (*model.TimeSlot, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("start_time must be before end_time")
	}

	slot := &model.TimeSlot{
		GradeID:   gradeID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Status:    model.SlotStatusAvailable,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("grade_id", gradeID),
		zap.Time("start_time", slot.StartTime),
	)
	return slot, nil
}

// RequestOptions carries the teacher's request inputs.
type RequestOptions struct {
	TeacherID int64
	LectureID int64
	Notes     string
	// Bypass is the extra-class override: booking policy does not apply.
	Bypass bool
}

// Request moves an available slot to pending for a teacher. The booking
// policy pre-check runs first so obviously invalid selections fail with a
// typed error; the guarded UPDATE remains the authoritative check.
func (s *SlotService) Request(ctx context.Context, slotID int64, opts RequestOptions) (*model.TimeSlot, error) {
	if opts.LectureID == 0 {
		return nil, ErrLectureRequired
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if err := schedule.Transition(slot.Status, model.SlotStatusPending); err != nil {
		return nil, ErrSlotNotAvailable
	}

	cfg := s.configs.Current()
	loc := cfg.Location()

	if !opts.Bypass {
		if !cfg.TermFor(slot.GradeID).Contains(slot.StartTime, loc) {
			return nil, ErrOutsideTerm
		}

		// a window wide enough to cover the slot's calendar day in any offset
		existing, err := s.slotRepo.GetByTeacherID(ctx, opts.TeacherID, slot.StartTime.Add(-24*time.Hour), slot.StartTime.Add(24*time.Hour))
		if err != nil {
			return nil, fmt.Errorf("get teacher bookings: %w", err)
		}

		weekday := int(slot.StartTime.In(loc).Weekday())
		mode := cfg.BookingModeFor(slot.GradeID, weekday)
		if schedule.IsDayLocked(slot.StartTime, slot.GradeID, mode, existing, loc, opts.Bypass) {
			return nil, ErrDayLocked
		}
	}

	affected, err := s.slotRepo.Request(ctx, slotID, opts.TeacherID, opts.LectureID, opts.Notes)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// state changed server-side between the read and the update
		return nil, ErrSlotNotAvailable
	}

	updated, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("reload slot: %w", err)
	}

	s.logger.Info("Slot requested",
		zap.Int64("slot_id", slotID),
		zap.Int64("teacher_id", opts.TeacherID),
		zap.Int64("lecture_id", opts.LectureID),
	)

	if s.notifier != nil {
		s.notifier.SlotRequested(ctx, updated)
	}
	return updated, nil
}

// Approve moves a pending slot to approved on behalf of an admin.
func (s *SlotService) Approve(ctx context.Context, slotID, adminID int64) (*model.TimeSlot, error) {
	affected, err := s.slotRepo.Approve(ctx, slotID, adminID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if slot, err := s.slotRepo.GetByID(ctx, slotID); err == nil && slot == nil {
			return nil, ErrSlotNotFound
		}
		return nil, ErrSlotNotPending
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("reload slot: %w", err)
	}

	s.logger.Info("Slot approved",
		zap.Int64("slot_id", slotID),
		zap.Int64("admin_id", adminID),
	)

	if s.notifier != nil {
		s.notifier.SlotApproved(ctx, slot)
	}
	return slot, nil
}

// Reject moves a pending slot to rejected; a non-empty reason is mandatory.
func (s *SlotService) Reject(ctx context.Context, slotID, adminID int64, reason string) (*model.TimeSlot, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	affected, err := s.slotRepo.Reject(ctx, slotID, reason)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if slot, err := s.slotRepo.GetByID(ctx, slotID); err == nil && slot == nil {
			return nil, ErrSlotNotFound
		}
		return nil, ErrSlotNotPending
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("reload slot: %w", err)
	}

	s.logger.Info("Slot rejected",
		zap.Int64("slot_id", slotID),
		zap.Int64("admin_id", adminID),
		zap.String("reason", reason),
	)

	if s.notifier != nil {
		s.notifier.SlotRejected(ctx, slot)
	}
	return slot, nil
}

// Cancel withdraws a teacher's own pending request, returning the slot to
// available.
func (s *SlotService) Cancel(ctx context.Context, slotID, teacherID int64) error {
	affected, err := s.slotRepo.CancelRequest(ctx, slotID, teacherID)
	if err != nil {
		return err
	}
	if affected == 0 {
		slot, err := s.slotRepo.GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		switch {
		case slot == nil:
			return ErrSlotNotFound
		case slot.Status != model.SlotStatusPending:
			return ErrSlotNotPending
		default:
			return ErrNotSlotOwner
		}
	}

	s.logger.Info("Slot request canceled",
		zap.Int64("slot_id", slotID),
		zap.Int64("teacher_id", teacherID),
	)
	return nil
}

// CancelAllPending withdraws every pending request of one teacher.
func (s *SlotService) CancelAllPending(ctx context.Context, teacherID int64) (int64, error) {
	count, err := s.slotRepo.CancelAllPending(ctx, teacherID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("All pending requests canceled",
		zap.Int64("teacher_id", teacherID),
		zap.Int64("count", count),
	)
	return count, nil
}

// ReopenRejected resets a rejected slot to available. Re-requesting then goes
// through the normal available→pending path.
func (s *SlotService) ReopenRejected(ctx context.Context, slotID int64) error {
	affected, err := s.slotRepo.ReopenRejected(ctx, slotID)
	if err != nil {
		return err
	}
	if affected == 0 {
		slot, err := s.slotRepo.GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		return ErrSlotNotRejected
	}

	s.logger.Info("Rejected slot reopened", zap.Int64("slot_id", slotID))
	return nil
}

// List returns slots matching the filter.
func (s *SlotService) List(ctx context.Context, f repository.ListFilter) ([]*model.TimeSlot, error) {
	return s.slotRepo.List(ctx, f)
}

// GetByID returns the slot or ErrSlotNotFound.
func (s *SlotService) GetByID(ctx context.Context, slotID int64) (*model.TimeSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

// Stats returns the per-status aggregate, optionally per grade.
func (s *SlotService) Stats(ctx context.Context, gradeID int64) (*model.SlotStats, error) {
	return s.slotRepo.Stats(ctx, gradeID)
}

// Update rewrites an admin-editable slot window.
func (s *SlotService) Update(ctx context.Context, slotID int64, start, end time.Time) (*model.TimeSlot, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("start_time must be before end_time")
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	slot.StartTime = start.UTC()
	slot.EndTime = end.UTC()
	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Delete removes a slot (admin path; approved slots are deleted explicitly,
// never transitioned).
func (s *SlotService) Delete(ctx context.Context, slotID int64) error {
	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		return err
	}
	s.logger.Info("Slot deleted", zap.Int64("slot_id", slotID))
	return nil
}

// DeleteBatch removes a generation batch's still-available slots, the undo
// for a bulk create. Requested and approved slots of the batch stay.
func (s *SlotService) DeleteBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	count, err := s.slotRepo.DeleteBatch(ctx, batchID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Generation batch deleted",
		zap.String("batch_id", batchID.String()),
		zap.Int64("count", count),
	)
	return count, nil
}

// AvailabilityEntry annotates a slot with its lock state for the caller.
type AvailabilityEntry struct {
	Slot      *model.TimeSlot   `json:"slot"`
	DayLocked bool              `json:"day_locked"`
	Lock      schedule.LockKind `json:"lock,omitempty"`
}

// Availability returns the grade's term-gated available slots in [from, to),
// each annotated with day-level and own-request locks for the given teacher.
func (s *SlotService) Availability(ctx context.Context, gradeID, teacherID int64, from, to time.Time) ([]AvailabilityEntry, error) {
	cfg := s.configs.Current()
	loc := cfg.Location()
	term := cfg.TermFor(gradeID)

	slots, err := s.slotRepo.List(ctx, repository.ListFilter{
		GradeID: gradeID,
		Status:  model.SlotStatusAvailable,
		From:    from,
		To:      to,
	})
	if err != nil {
		return nil, err
	}

	mine, err := s.slotRepo.GetByTeacherID(ctx, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get teacher bookings: %w", err)
	}

	entries := make([]AvailabilityEntry, 0, len(slots))
	for _, slot := range slots {
		if !term.Contains(slot.StartTime, loc) {
			continue
		}
		weekday := int(slot.StartTime.In(loc).Weekday())
		mode := cfg.BookingModeFor(slot.GradeID, weekday)
		entries = append(entries, AvailabilityEntry{
			Slot:      slot,
			DayLocked: schedule.IsDayLocked(slot.StartTime, slot.GradeID, mode, mine, loc, false),
			Lock:      schedule.SlotLock(slot.ID, mine),
		})
	}
	return entries, nil
}
