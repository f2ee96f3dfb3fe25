package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository"
	"github.com/lessonhub/scheduler/internal/schedule"
	"go.uber.org/zap"
)

var (
	ErrUnitNotFound    = errors.New("unit not found")
	ErrLectureNotFound = errors.New("lecture not found")
	ErrOrderMismatch   = errors.New("ordered ids do not match existing siblings")
)

type UnitService struct {
	unitRepo    *repository.UnitRepository
	lectureRepo *repository.LectureRepository
	logger      *zap.Logger
}

func NewUnitService(
	unitRepo *repository.UnitRepository,
	lectureRepo *repository.LectureRepository,
	logger *zap.Logger,
) *UnitService {
	return &UnitService{
		unitRepo:    unitRepo,
		lectureRepo: lectureRepo,
		logger:      logger,
	}
}

func (s *UnitService) CreateUnit(ctx context.Context, courseID int64, title model.LocalizedText, published bool) (*model.Unit, error) {
	if title.IsZero() {
		return nil, fmt.Errorf("unit title is required")
	}

	unit := &model.Unit{
		CourseID:    courseID,
		Title:       title,
		IsPublished: published,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	s.logger.Info("Unit created",
		zap.Int64("unit_id", unit.ID),
		zap.Int64("course_id", courseID),
	)
	return unit, nil
}

func (s *UnitService) GetUnits(ctx context.Context, courseID int64) ([]*model.Unit, error) {
	return s.unitRepo.GetByCourseID(ctx, courseID)
}

func (s *UnitService) UpdateUnit(ctx context.Context, unitID int64, title model.LocalizedText, published bool) (*model.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}

	if !title.IsZero() {
		unit.Title = title
	}
	unit.IsPublished = published

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) DeleteUnit(ctx context.Context, unitID int64) error {
	if err := s.unitRepo.Delete(ctx, unitID); err != nil {
		return err
	}
	s.logger.Info("Unit deleted", zap.Int64("unit_id", unitID))
	return nil
}

// ReorderUnits applies a complete new ordering for a course's units. The
// ordered id list must cover exactly the existing siblings; the rewrite is a
// minimal patch in one transaction, last writer wins.
func (s *UnitService) ReorderUnits(ctx context.Context, courseID int64, orderedIDs []int64) error {
	units, err := s.unitRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return err
	}

	prev := make([]int64, len(units))
	for i, u := range units {
		prev[i] = u.ID
	}
	if !sameIDSet(prev, orderedIDs) {
		return ErrOrderMismatch
	}

	patches := schedule.Diff(prev, orderedIDs)
	if len(patches) == 0 {
		return nil
	}
	if err := s.unitRepo.ApplyOrder(ctx, courseID, patches); err != nil {
		return err
	}

	s.logger.Info("Units reordered",
		zap.Int64("course_id", courseID),
		zap.Int("changed", len(patches)),
	)
	return nil
}

func (s *UnitService) CreateLecture(ctx context.Context, courseID int64, unitID *int64, title model.LocalizedText) (*model.UnitLecture, error) {
	if title.IsZero() {
		return nil, fmt.Errorf("lecture title is required")
	}

	lecture := &model.UnitLecture{
		CourseID: courseID,
		UnitID:   unitID,
		Title:    title,
	}
	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, err
	}

	s.logger.Info("Lecture created",
		zap.Int64("lecture_id", lecture.ID),
		zap.Int64("course_id", courseID),
	)
	return lecture, nil
}

func (s *UnitService) GetLectures(ctx context.Context, unitID int64) ([]*model.UnitLecture, error) {
	return s.lectureRepo.GetByUnitID(ctx, unitID)
}

func (s *UnitService) GetUnassignedLectures(ctx context.Context, courseID int64) ([]*model.UnitLecture, error) {
	return s.lectureRepo.GetUnassigned(ctx, courseID)
}

func (s *UnitService) UpdateLecture(ctx context.Context, lectureID int64, title model.LocalizedText) (*model.UnitLecture, error) {
	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture == nil {
		return nil, ErrLectureNotFound
	}

	if !title.IsZero() {
		lecture.Title = title
	}
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (s *UnitService) DeleteLecture(ctx context.Context, lectureID int64) error {
	if err := s.lectureRepo.Delete(ctx, lectureID); err != nil {
		return err
	}
	s.logger.Info("Lecture deleted", zap.Int64("lecture_id", lectureID))
	return nil
}

// ReorderLectures applies a complete new ordering within one unit.
func (s *UnitService) ReorderLectures(ctx context.Context, unitID int64, orderedIDs []int64) error {
	lectures, err := s.lectureRepo.GetByUnitID(ctx, unitID)
	if err != nil {
		return err
	}

	prev := make([]int64, len(lectures))
	for i, l := range lectures {
		prev[i] = l.ID
	}
	if !sameIDSet(prev, orderedIDs) {
		return ErrOrderMismatch
	}

	patches := schedule.Diff(prev, orderedIDs)
	if len(patches) == 0 {
		return nil
	}
	if err := s.lectureRepo.ApplyOrder(ctx, unitID, patches); err != nil {
		return err
	}

	s.logger.Info("Lectures reordered",
		zap.Int64("unit_id", unitID),
		zap.Int("changed", len(patches)),
	)
	return nil
}

// MoveLecture reassigns a lecture to another unit (nil for the unassigned
// pool) at the given 1-based position.
func (s *UnitService) MoveLecture(ctx context.Context, lectureID int64, targetUnit *int64, position int) error {
	if position < 1 {
		position = 1
	}

	if targetUnit != nil {
		unit, err := s.unitRepo.GetByID(ctx, *targetUnit)
		if err != nil {
			return err
		}
		if unit == nil {
			return ErrUnitNotFound
		}
	}

	if err := s.lectureRepo.MoveToUnit(ctx, lectureID, targetUnit, position); err != nil {
		return err
	}

	s.logger.Info("Lecture moved",
		zap.Int64("lecture_id", lectureID),
		zap.Int("position", position),
	)
	return nil
}

func sameIDSet(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int64]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}
