package schedule

import (
	"testing"

	"github.com/lessonhub/scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	statuses := []model.SlotStatus{
		model.SlotStatusAvailable,
		model.SlotStatusPending,
		model.SlotStatusApproved,
		model.SlotStatusRejected,
	}

	allowed := map[[2]model.SlotStatus]bool{
		{model.SlotStatusAvailable, model.SlotStatusPending}: true,
		{model.SlotStatusPending, model.SlotStatusApproved}:  true,
		{model.SlotStatusPending, model.SlotStatusRejected}:  true,
		{model.SlotStatusPending, model.SlotStatusAvailable}: true,
	}

	count := 0
	for _, from := range statuses {
		for _, to := range statuses {
			got := CanTransition(from, to)
			assert.Equal(t, allowed[[2]model.SlotStatus{from, to}], got, "%s → %s", from, to)
			if got {
				count++
			}
		}
	}
	assert.Equal(t, 4, count, "the lifecycle has exactly four transitions")
}

func TestTransitionError(t *testing.T) {
	require.NoError(t, Transition(model.SlotStatusAvailable, model.SlotStatusPending))

	err := Transition(model.SlotStatusRejected, model.SlotStatusApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "rejected")
	assert.Contains(t, err.Error(), "approved")
}
