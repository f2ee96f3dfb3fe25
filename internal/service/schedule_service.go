package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lessonhub/scheduler/internal/model"
	"github.com/lessonhub/scheduler/internal/repository"
	"github.com/lessonhub/scheduler/internal/schedule"
	"github.com/lessonhub/scheduler/internal/schedule/configstore"
	"go.uber.org/zap"
)

// termGenerationDayCap bounds the per-grade term walk the same way the bulk
// generator bounds its own; a clipped run is not an error.
const termGenerationDayCap = 366

// ErrInvalidConfig marks configuration rejected by validation, as opposed to
// a storage failure while saving it.
var ErrInvalidConfig = errors.New("invalid schedule config")

type ScheduleService struct {
	configs  *configstore.Manager
	slotRepo *repository.SlotRepository
	logger   *zap.Logger
}

func NewScheduleService(
	configs *configstore.Manager,
	slotRepo *repository.SlotRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		configs:  configs,
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Config returns the current schedule configuration.
func (s *ScheduleService) Config() model.ScheduleConfig {
	return s.configs.Current()
}

// UpdateConfig validates and persists the admin's configuration, broadcasting
// the change to all consumers.
func (s *ScheduleService) UpdateConfig(ctx context.Context, cfg model.ScheduleConfig) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	return s.configs.Update(ctx, cfg)
}

func validateConfig(cfg model.ScheduleConfig) error {
	for gradeID, grade := range cfg.Grades {
		for weekday, day := range grade.Days {
			if weekday < 0 || weekday > 6 {
				return fmt.Errorf("%w: grade %d: weekday %d out of range", ErrInvalidConfig, gradeID, weekday)
			}
			if !day.IsActive {
				continue
			}
			if day.SlotDurationMinutes <= 0 {
				return fmt.Errorf("%w: grade %d weekday %d: slot duration must be positive", ErrInvalidConfig, gradeID, weekday)
			}
			if day.GapMinutes < 0 {
				return fmt.Errorf("%w: grade %d weekday %d: gap must not be negative", ErrInvalidConfig, gradeID, weekday)
			}
			if day.StartTime >= day.EndTime {
				return fmt.Errorf("%w: grade %d weekday %d: start time must be before end time", ErrInvalidConfig, gradeID, weekday)
			}
			for _, b := range day.Breaks {
				if b.Start >= b.End {
					return fmt.Errorf("%w: grade %d weekday %d: break %s-%s is inverted", ErrInvalidConfig, gradeID, weekday, b.Start, b.End)
				}
			}
		}
	}
	return nil
}

// TermGenerationResult reports one grade's server-side generation run.
type TermGenerationResult struct {
	GradeID      int64     `json:"grade_id"`
	BatchID      uuid.UUID `json:"batch_id"`
	CreatedCount int       `json:"created_count"`
	SkippedCount int       `json:"skipped_count"`
}

// GenerateForTerm expands a grade's active day configs over its effective
// term and persists the result, skipping overlaps. This is the opaque
// "generate slots for semester" server job of the platform API; unlike the
// client-side preview it honors breaks and gap.
func (s *ScheduleService) GenerateForTerm(ctx context.Context, gradeID int64) (*TermGenerationResult, error) {
	cfg := s.configs.Current()
	loc := cfg.Location()

	grade, ok := cfg.Grades[gradeID]
	if !ok || len(grade.Days) == 0 {
		return nil, fmt.Errorf("grade %d has no day schedule configured", gradeID)
	}

	term := cfg.TermFor(gradeID)
	if !term.IsActive || term.StartDate == "" || term.EndDate == "" {
		return nil, fmt.Errorf("grade %d has no active term", gradeID)
	}
	start, err := time.ParseInLocation("2006-01-02", term.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("parse term start: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", term.EndDate, loc)
	if err != nil {
		return nil, fmt.Errorf("parse term end: %w", err)
	}

	var windows []schedule.Window
	days := 0
	for day := start; !day.After(end) && days < termGenerationDayCap; day = day.AddDate(0, 0, 1) {
		days++
		dayCfg, ok := grade.Days[int(day.Weekday())]
		if !ok {
			continue
		}
		windows = append(windows, schedule.ExpandDay(dayCfg, day, loc)...)
	}

	if len(windows) == 0 {
		return nil, ErrNothingToCreate
	}

	batchID := uuid.New()
	created, skipped, err := s.slotRepo.BulkCreate(ctx, gradeID, windows, batchID)
	if err != nil {
		return nil, fmt.Errorf("persist term slots: %w", err)
	}

	s.logger.Info("Term slot generation finished",
		zap.Int64("grade_id", gradeID),
		zap.String("batch_id", batchID.String()),
		zap.Int("created", created),
		zap.Int("skipped", skipped),
	)

	return &TermGenerationResult{
		GradeID:      gradeID,
		BatchID:      batchID,
		CreatedCount: created,
		SkippedCount: skipped,
	}, nil
}

// GenerateForAllGrades runs the term generation for every configured grade.
// Per-grade failures are logged and skipped so one bad config cannot stall
// the nightly job.
func (s *ScheduleService) GenerateForAllGrades(ctx context.Context) []TermGenerationResult {
	cfg := s.configs.Current()

	var results []TermGenerationResult
	for gradeID := range cfg.Grades {
		result, err := s.GenerateForTerm(ctx, gradeID)
		if err != nil {
			s.logger.Warn("Skipping grade in term generation",
				zap.Int64("grade_id", gradeID),
				zap.Error(err),
			)
			continue
		}
		results = append(results, *result)
	}
	return results
}
