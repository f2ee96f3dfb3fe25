package schedule

import (
	"errors"
	"fmt"

	"github.com/lessonhub/scheduler/internal/model"
)

// ErrInvalidTransition guards the slot lifecycle. The only representable
// transitions are: available→pending (teacher request), pending→approved,
// pending→rejected (admin decision) and pending→available (teacher withdraws).
var ErrInvalidTransition = errors.New("invalid slot status transition")

var transitions = map[model.SlotStatus][]model.SlotStatus{
	model.SlotStatusAvailable: {model.SlotStatusPending},
	model.SlotStatusPending:   {model.SlotStatusApproved, model.SlotStatusRejected, model.SlotStatusAvailable},
	model.SlotStatusApproved:  {},
	model.SlotStatusRejected:  {},
}

// CanTransition reports whether from→to is an allowed lifecycle step.
func CanTransition(from, to model.SlotStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a lifecycle step, returning a wrapped
// ErrInvalidTransition naming both states when it is not allowed.
func Transition(from, to model.SlotStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
	}
	return nil
}
