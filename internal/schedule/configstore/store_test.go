package configstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleConfig() model.ScheduleConfig {
	return model.ScheduleConfig{
		GlobalTerm:        model.AcademicTerm{StartDate: "2024-09-01", EndDate: "2025-01-15", IsActive: true},
		GlobalBookingMode: model.BookingModeIndividual,
		Timezone:          "Africa/Cairo",
		Grades: map[int64]model.GradeScheduleConfig{
			3: {
				Days: map[int]model.DayScheduleConfig{
					0: {IsActive: true, StartTime: "09:00", EndTime: "14:00", SlotDurationMinutes: 60, GapMinutes: 15},
				},
			},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedule.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleConfig()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleConfig(), got)
}

func TestFileStoreMissingFileReturnsDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScheduleConfig(), got)
}

func TestFileStorePartialFileMergesOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timezone":"Africa/Cairo"}`), 0o644))

	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Africa/Cairo", got.Timezone)
	assert.Equal(t, model.BookingModeIndividual, got.GlobalBookingMode)
	assert.NotNil(t, got.Grades)
}

func TestFileStoreCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestManagerUpdateAndBroadcast(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	mgr, err := NewManager(ctx, store, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScheduleConfig(), mgr.Current())

	sub := mgr.Subscribe()

	cfg := sampleConfig()
	require.NoError(t, mgr.Update(ctx, cfg))
	assert.Equal(t, cfg, mgr.Current())

	select {
	case got := <-sub:
		assert.Equal(t, cfg, got)
	default:
		t.Fatal("subscriber did not receive the update")
	}

	// persisted too, not just cached
	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, persisted)
}

func TestManagerSkipsFullSubscriber(t *testing.T) {
	ctx := context.Background()
	mgr, err := NewManager(ctx, NewMemoryStore(), zap.NewNop())
	require.NoError(t, err)

	_ = mgr.Subscribe() // never drained; buffer holds one update

	first := sampleConfig()
	second := sampleConfig()
	second.Timezone = "UTC"

	require.NoError(t, mgr.Update(ctx, first))
	require.NoError(t, mgr.Update(ctx, second), "a full subscriber must not block updates")
	assert.Equal(t, second, mgr.Current())
}
