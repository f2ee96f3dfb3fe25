package app

import (
	"context"

	"github.com/lessonhub/scheduler/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the nightly term slot generation, the server-side
// counterpart of the admin's manual "generate slots for semester" action.
type Scheduler struct {
	cron     *cron.Cron
	schedule *service.ScheduleService
	logger   *zap.Logger
}

func NewScheduler(cronSpec string, scheduleService *service.ScheduleService, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		schedule: scheduleService,
		logger:   logger,
	}

	if _, err := s.cron.AddFunc(cronSpec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop and performs one immediate run so freshly
// configured grades get slots without waiting for the night.
func (s *Scheduler) Start() {
	s.logger.Info("Starting background scheduler")
	go s.run()
	s.cron.Start()
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run() {
	s.logger.Info("Starting automatic term slot generation")

	results := s.schedule.GenerateForAllGrades(context.Background())

	created, skipped := 0, 0
	for _, r := range results {
		created += r.CreatedCount
		skipped += r.SkippedCount
	}
	s.logger.Info("Automatic term slot generation completed",
		zap.Int("grades", len(results)),
		zap.Int("slots_created", created),
		zap.Int("slots_skipped", skipped),
	)
}
