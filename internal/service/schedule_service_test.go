package service

import (
	"context"
	"testing"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gradeCfg(day model.DayScheduleConfig) model.ScheduleConfig {
	cfg := model.DefaultScheduleConfig()
	cfg.Grades[1] = model.GradeScheduleConfig{
		Days: map[int]model.DayScheduleConfig{0: day},
	}
	return cfg
}

func TestUpdateConfigValidation(t *testing.T) {
	svc := NewScheduleService(testConfigs(t, model.DefaultScheduleConfig()), nil, zap.NewNop())
	ctx := context.Background()

	valid := model.DayScheduleConfig{
		IsActive:            true,
		StartTime:           "09:00",
		EndTime:             "14:00",
		SlotDurationMinutes: 60,
		Breaks:              []model.ClockInterval{{Start: "12:00", End: "12:30"}},
	}

	t.Run("accepts a valid config", func(t *testing.T) {
		require.NoError(t, svc.UpdateConfig(ctx, gradeCfg(valid)))
		assert.Equal(t, gradeCfg(valid), svc.Config())
	})

	t.Run("rejects zero duration on an active day", func(t *testing.T) {
		day := valid
		day.SlotDurationMinutes = 0
		assert.ErrorIs(t, svc.UpdateConfig(ctx, gradeCfg(day)), ErrInvalidConfig)
	})

	t.Run("rejects negative gap", func(t *testing.T) {
		day := valid
		day.GapMinutes = -5
		assert.ErrorIs(t, svc.UpdateConfig(ctx, gradeCfg(day)), ErrInvalidConfig)
	})

	t.Run("rejects inverted working hours", func(t *testing.T) {
		day := valid
		day.StartTime = "15:00"
		assert.ErrorIs(t, svc.UpdateConfig(ctx, gradeCfg(day)), ErrInvalidConfig)
	})

	t.Run("rejects inverted breaks", func(t *testing.T) {
		day := valid
		day.Breaks = []model.ClockInterval{{Start: "13:00", End: "12:00"}}
		assert.ErrorIs(t, svc.UpdateConfig(ctx, gradeCfg(day)), ErrInvalidConfig)
	})

	t.Run("ignores inactive days entirely", func(t *testing.T) {
		day := model.DayScheduleConfig{IsActive: false, StartTime: "15:00", EndTime: "09:00"}
		assert.NoError(t, svc.UpdateConfig(ctx, gradeCfg(day)))
	})

	t.Run("rejects out of range weekdays", func(t *testing.T) {
		cfg := model.DefaultScheduleConfig()
		cfg.Grades[1] = model.GradeScheduleConfig{
			Days: map[int]model.DayScheduleConfig{7: valid},
		}
		assert.ErrorIs(t, svc.UpdateConfig(ctx, cfg), ErrInvalidConfig)
	})
}
