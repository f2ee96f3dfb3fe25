package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository/base"
	"github.com/lessonhub/scheduler/internal/schedule"
)

const slotColumns = `id, grade_id, start_time, end_time, status, teacher_id, lecture_id,
	       request_notes, rejection_reason, requested_at, approved_at, approved_by, batch_id, created_at`

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.GradeID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.TeacherID,
		&slot.LectureID,
		&slot.RequestNotes,
		&slot.RejectionReason,
		&slot.RequestedAt,
		&slot.ApprovedAt,
		&slot.ApprovedBy,
		&slot.BatchID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func collectSlots(rows pgx.Rows) ([]*model.TimeSlot, error) {
	defer rows.Close()
	var slots []*model.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Create inserts a single available slot.
func (r *SlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		INSERT INTO time_slots (grade_id, start_time, end_time, status, batch_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.GradeID,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
		slot.BatchID,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// BulkCreate inserts the generated windows as available slots, skipping any
// window that overlaps an existing slot of the same grade. Returns created
// and skipped counts; the whole batch shares one transaction and one batch id.
func (r *SlotRepository) BulkCreate(ctx context.Context, gradeID int64, windows []schedule.Window, batchID uuid.UUID) (created, skipped int, err error) {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO time_slots (grade_id, start_time, end_time, status, batch_id)
		SELECT $1, $2, $3, 'available', $4
		WHERE NOT EXISTS (
			SELECT 1 FROM time_slots
			WHERE grade_id = $1 AND start_time < $3 AND end_time > $2
		)
	`

	for _, w := range windows {
		tag, err := tx.Exec(ctx, query, gradeID, w.StartTime, w.EndTime, batchID)
		if err != nil {
			return 0, 0, fmt.Errorf("bulk create slot: %w", err)
		}
		if tag.RowsAffected() > 0 {
			created++
		} else {
			skipped++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit transaction: %w", err)
	}

	return created, skipped, nil
}

// GetByID returns the slot or nil when it does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}
	return slot, nil
}

// ListFilter narrows List; zero values mean "no filter".
type ListFilter struct {
	GradeID   int64
	TeacherID int64
	Status    model.SlotStatus
	From      time.Time
	To        time.Time
}

// List returns slots matching the filter, ordered by start time.
func (r *SlotRepository) List(ctx context.Context, f ListFilter) ([]*model.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE 1=1`
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.GradeID != 0 {
		query += ` AND grade_id = ` + arg(f.GradeID)
	}
	if f.TeacherID != 0 {
		query += ` AND teacher_id = ` + arg(f.TeacherID)
	}
	if f.Status != "" {
		query += ` AND status = ` + arg(f.Status)
	}
	if !f.From.IsZero() {
		query += ` AND start_time >= ` + arg(f.From)
	}
	if !f.To.IsZero() {
		query += ` AND start_time < ` + arg(f.To)
	}
	query += ` ORDER BY start_time`

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return collectSlots(rows)
}

// GetByTeacherID returns the teacher's slots in [from, to).
func (r *SlotRepository) GetByTeacherID(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.TimeSlot, error) {
	return r.List(ctx, ListFilter{TeacherID: teacherID, From: from, To: to})
}

// Stats returns the per-status aggregate the dashboard polls.
func (r *SlotRepository) Stats(ctx context.Context, gradeID int64) (*model.SlotStats, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'available'),
		       count(*) FILTER (WHERE status = 'pending'),
		       count(*) FILTER (WHERE status = 'approved'),
		       count(*) FILTER (WHERE status = 'rejected')
		FROM time_slots
		WHERE ($1 = 0 OR grade_id = $1)
	`

	var stats model.SlotStats
	err := r.QueryRow(ctx, query, gradeID).Scan(
		&stats.Total,
		&stats.Available,
		&stats.Pending,
		&stats.Approved,
		&stats.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("slot stats: %w", err)
	}
	return &stats, nil
}

// Request moves an available slot to pending for a teacher. Zero affected
// rows means the slot was not available (changed server-side or taken).
func (r *SlotRepository) Request(ctx context.Context, slotID, teacherID, lectureID int64, notes string) (int64, error) {
	query := `
		UPDATE time_slots
		SET status = 'pending', teacher_id = $2, lecture_id = $3, request_notes = $4,
		    requested_at = now(), rejection_reason = ''
		WHERE id = $1 AND status = 'available'
	`

	affected, err := r.ExecAffected(ctx, query, slotID, teacherID, lectureID, notes)
	if err != nil {
		return 0, fmt.Errorf("request slot: %w", err)
	}
	return affected, nil
}

// Approve moves a pending slot to approved, stamping the approver.
func (r *SlotRepository) Approve(ctx context.Context, slotID, approvedBy int64) (int64, error) {
	query := `
		UPDATE time_slots
		SET status = 'approved', approved_by = $2, approved_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	affected, err := r.ExecAffected(ctx, query, slotID, approvedBy)
	if err != nil {
		return 0, fmt.Errorf("approve slot: %w", err)
	}
	return affected, nil
}

// rejectSlotQuery attaches only the rejection reason; the approval stamps
// stay unset on a rejected slot.
const rejectSlotQuery = `
	UPDATE time_slots
	SET status = 'rejected', rejection_reason = $2
	WHERE id = $1 AND status = 'pending'
`

// Reject moves a pending slot to rejected with the admin's reason.
func (r *SlotRepository) Reject(ctx context.Context, slotID int64, reason string) (int64, error) {
	affected, err := r.ExecAffected(ctx, rejectSlotQuery, slotID, reason)
	if err != nil {
		return 0, fmt.Errorf("reject slot: %w", err)
	}
	return affected, nil
}

// CancelRequest returns a teacher's own pending slot to available, clearing
// the request metadata.
func (r *SlotRepository) CancelRequest(ctx context.Context, slotID, teacherID int64) (int64, error) {
	query := `
		UPDATE time_slots
		SET status = 'available', teacher_id = NULL, lecture_id = NULL,
		    request_notes = '', requested_at = NULL
		WHERE id = $1 AND status = 'pending' AND teacher_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, slotID, teacherID)
	if err != nil {
		return 0, fmt.Errorf("cancel slot request: %w", err)
	}
	return affected, nil
}

// CancelAllPending withdraws every pending request of one teacher.
func (r *SlotRepository) CancelAllPending(ctx context.Context, teacherID int64) (int64, error) {
	query := `
		UPDATE time_slots
		SET status = 'available', teacher_id = NULL, lecture_id = NULL,
		    request_notes = '', requested_at = NULL
		WHERE status = 'pending' AND teacher_id = $1
	`

	affected, err := r.ExecAffected(ctx, query, teacherID)
	if err != nil {
		return 0, fmt.Errorf("cancel all pending: %w", err)
	}
	return affected, nil
}

// ReopenRejected resets a rejected slot to available so it can be requested
// again.
func (r *SlotRepository) ReopenRejected(ctx context.Context, slotID int64) (int64, error) {
	query := `
		UPDATE time_slots
		SET status = 'available', teacher_id = NULL, lecture_id = NULL,
		    request_notes = '', rejection_reason = '', requested_at = NULL
		WHERE id = $1 AND status = 'rejected'
	`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return 0, fmt.Errorf("reopen rejected slot: %w", err)
	}
	return affected, nil
}

// Update rewrites a slot's window.
func (r *SlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET start_time = $2, end_time = $3
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, slot.ID, slot.StartTime, slot.EndTime)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("slot not found")
	}
	return nil
}

// Delete removes a slot.
func (r *SlotRepository) Delete(ctx context.Context, slotID int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM time_slots WHERE id = $1`, slotID)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("slot not found")
	}
	return nil
}

// DeleteBatch removes every still-available slot of a generation batch.
func (r *SlotRepository) DeleteBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	query := `DELETE FROM time_slots WHERE batch_id = $1 AND status = 'available'`

	affected, err := r.ExecAffected(ctx, query, batchID)
	if err != nil {
		return 0, fmt.Errorf("delete batch: %w", err)
	}
	return affected, nil
}
