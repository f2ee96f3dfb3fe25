package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository/base"
	"github.com/lessonhub/scheduler/internal/schedule"
)

type LectureRepository struct {
	*base.Repository
}

func NewLectureRepository(pool *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{Repository: base.NewRepository(pool)}
}

// Create inserts the lecture at the end of its unit's ordering (or of the
// course's unassigned pool when UnitID is nil).
func (r *LectureRepository) Create(ctx context.Context, lecture *model.UnitLecture) error {
	query := `
		INSERT INTO unit_lectures (course_id, unit_id, title, sort_order)
		VALUES ($1, $2, $3, (
			SELECT COALESCE(MAX(sort_order), 0) + 1
			FROM unit_lectures
			WHERE course_id = $1 AND unit_id IS NOT DISTINCT FROM $2
		))
		RETURNING id, sort_order, created_at
	`

	err := r.QueryRow(
		ctx, query,
		lecture.CourseID,
		lecture.UnitID,
		lecture.Title,
	).Scan(&lecture.ID, &lecture.Order, &lecture.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}

	return nil
}

func (r *LectureRepository) GetByID(ctx context.Context, id int64) (*model.UnitLecture, error) {
	query := `
		SELECT id, course_id, unit_id, title, sort_order, created_at, updated_at
		FROM unit_lectures
		WHERE id = $1
	`

	lecture, err := scanLecture(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lecture by id: %w", err)
	}
	return lecture, nil
}

func scanLecture(row pgx.Row) (*model.UnitLecture, error) {
	var lecture model.UnitLecture
	err := row.Scan(
		&lecture.ID,
		&lecture.CourseID,
		&lecture.UnitID,
		&lecture.Title,
		&lecture.Order,
		&lecture.CreatedAt,
		&lecture.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

// GetByUnitID returns a unit's lectures in display order.
func (r *LectureRepository) GetByUnitID(ctx context.Context, unitID int64) ([]*model.UnitLecture, error) {
	query := `
		SELECT id, course_id, unit_id, title, sort_order, created_at, updated_at
		FROM unit_lectures
		WHERE unit_id = $1
		ORDER BY sort_order
	`
	return r.collect(ctx, query, unitID)
}

// GetUnassigned returns a course's lectures with no unit.
func (r *LectureRepository) GetUnassigned(ctx context.Context, courseID int64) ([]*model.UnitLecture, error) {
	query := `
		SELECT id, course_id, unit_id, title, sort_order, created_at, updated_at
		FROM unit_lectures
		WHERE course_id = $1 AND unit_id IS NULL
		ORDER BY sort_order
	`
	return r.collect(ctx, query, courseID)
}

func (r *LectureRepository) collect(ctx context.Context, query string, args ...interface{}) ([]*model.UnitLecture, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	defer rows.Close()

	var lectures []*model.UnitLecture
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lecture: %w", err)
		}
		lectures = append(lectures, lecture)
	}
	return lectures, rows.Err()
}

func (r *LectureRepository) Update(ctx context.Context, lecture *model.UnitLecture) error {
	query := `
		UPDATE unit_lectures
		SET title = $2, updated_at = now()
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, lecture.ID, lecture.Title)
	if err != nil {
		return fmt.Errorf("update lecture: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lecture not found")
	}
	return nil
}

func (r *LectureRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM unit_lectures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lecture: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lecture not found")
	}
	return nil
}

// ApplyOrder rewrites sibling orders within one unit in one transaction.
func (r *LectureRepository) ApplyOrder(ctx context.Context, unitID int64, patches []schedule.OrderPatch) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range patches {
		tag, err := tx.Exec(ctx,
			`UPDATE unit_lectures SET sort_order = $3, updated_at = now() WHERE id = $1 AND unit_id = $2`,
			p.ID, unitID, p.Order,
		)
		if err != nil {
			return fmt.Errorf("apply lecture order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("lecture %d not in unit %d", p.ID, unitID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// MoveToUnit reassigns a lecture to targetUnit (nil for unassigned) at the
// given 1-based position, renumbering both sibling groups in one transaction.
func (r *LectureRepository) MoveToUnit(ctx context.Context, lectureID int64, targetUnit *int64, position int) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var courseID int64
	var sourceUnit *int64
	err = tx.QueryRow(ctx,
		`SELECT course_id, unit_id FROM unit_lectures WHERE id = $1 FOR UPDATE`,
		lectureID,
	).Scan(&courseID, &sourceUnit)
	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("lecture not found")
		}
		return fmt.Errorf("get lecture for move: %w", err)
	}

	// open a hole in the target ordering, then drop the lecture into it
	_, err = tx.Exec(ctx,
		`UPDATE unit_lectures SET sort_order = sort_order + 1
		 WHERE course_id = $1 AND unit_id IS NOT DISTINCT FROM $2 AND sort_order >= $3`,
		courseID, targetUnit, position,
	)
	if err != nil {
		return fmt.Errorf("shift target orders: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE unit_lectures SET unit_id = $2, sort_order = $3, updated_at = now() WHERE id = $1`,
		lectureID, targetUnit, position,
	)
	if err != nil {
		return fmt.Errorf("move lecture: %w", err)
	}

	// close the hole left in the source ordering
	_, err = tx.Exec(ctx,
		`WITH renumbered AS (
			SELECT id, row_number() OVER (ORDER BY sort_order) AS rn
			FROM unit_lectures
			WHERE course_id = $1 AND unit_id IS NOT DISTINCT FROM $2
		)
		UPDATE unit_lectures ul
		SET sort_order = renumbered.rn
		FROM renumbered
		WHERE ul.id = renumbered.id`,
		courseID, sourceUnit,
	)
	if err != nil {
		return fmt.Errorf("renumber source orders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
