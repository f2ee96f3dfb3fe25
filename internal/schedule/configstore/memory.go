package configstore

import (
	"context"
	"sync"

	"github.com/lessonhub/scheduler/internal/model"
)

// MemoryStore is the in-process test double for the storage port.
type MemoryStore struct {
	mu  sync.Mutex
	cfg model.ScheduleConfig
	set bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (model.ScheduleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return model.DefaultScheduleConfig(), nil
	}
	return s.cfg, nil
}

func (s *MemoryStore) Save(_ context.Context, cfg model.ScheduleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.set = true
	return nil
}
