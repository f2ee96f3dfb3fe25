package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository/base"
	"github.com/lessonhub/scheduler/internal/schedule"
)

type UnitRepository struct {
	*base.Repository
}

func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{Repository: base.NewRepository(pool)}
}

// Create inserts the unit at the end of its course's ordering.
func (r *UnitRepository) Create(ctx context.Context, unit *model.Unit) error {
	query := `
		INSERT INTO units (course_id, title, sort_order, is_published)
		VALUES ($1, $2, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM units WHERE course_id = $1), $3)
		RETURNING id, sort_order, created_at
	`

	err := r.QueryRow(
		ctx, query,
		unit.CourseID,
		unit.Title,
		unit.IsPublished,
	).Scan(&unit.ID, &unit.Order, &unit.CreatedAt)

	if err != nil {
		return fmt.Errorf("create unit: %w", err)
	}

	return nil
}

func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*model.Unit, error) {
	query := `
		SELECT id, course_id, title, sort_order, is_published, created_at, updated_at
		FROM units
		WHERE id = $1
	`

	var unit model.Unit
	err := r.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.CourseID,
		&unit.Title,
		&unit.Order,
		&unit.IsPublished,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit by id: %w", err)
	}
	return &unit, nil
}

// GetByCourseID returns the course's units in display order.
func (r *UnitRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*model.Unit, error) {
	query := `
		SELECT id, course_id, title, sort_order, is_published, created_at, updated_at
		FROM units
		WHERE course_id = $1
		ORDER BY sort_order
	`

	rows, err := r.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("get units by course: %w", err)
	}
	defer rows.Close()

	var units []*model.Unit
	for rows.Next() {
		var unit model.Unit
		err := rows.Scan(
			&unit.ID,
			&unit.CourseID,
			&unit.Title,
			&unit.Order,
			&unit.IsPublished,
			&unit.CreatedAt,
			&unit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, &unit)
	}
	return units, rows.Err()
}

func (r *UnitRepository) Update(ctx context.Context, unit *model.Unit) error {
	query := `
		UPDATE units
		SET title = $2, is_published = $3, updated_at = now()
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, unit.ID, unit.Title, unit.IsPublished)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unit not found")
	}
	return nil
}

// Delete removes the unit; its lectures fall back to unassigned via the FK.
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unit not found")
	}
	return nil
}

// ApplyOrder rewrites the order field for the given siblings in one
// transaction; the patch is computed by the caller.
func (r *UnitRepository) ApplyOrder(ctx context.Context, courseID int64, patches []schedule.OrderPatch) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range patches {
		tag, err := tx.Exec(ctx,
			`UPDATE units SET sort_order = $3, updated_at = now() WHERE id = $1 AND course_id = $2`,
			p.ID, courseID, p.Order,
		)
		if err != nil {
			return fmt.Errorf("apply unit order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("unit %d not in course %d", p.ID, courseID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
