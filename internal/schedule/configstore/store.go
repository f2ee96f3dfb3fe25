// Package configstore persists the admin's schedule configuration blob behind
// a storage port, so the engine and the API read it through one place and
// tests can swap the backing store.
package configstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/lessonhub/scheduler/internal/model"
	"go.uber.org/zap"
)

// Store is the storage port: one key holding the whole ScheduleConfig.
type Store interface {
	Load(ctx context.Context) (model.ScheduleConfig, error)
	Save(ctx context.Context, cfg model.ScheduleConfig) error
}

// Manager caches the current config and broadcasts every save to subscribers,
// so all consumers re-read the updated configuration. Single-writer by
// design; it does not try to reconcile concurrent admins.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	current model.ScheduleConfig
	subs    []chan model.ScheduleConfig
}

func NewManager(ctx context.Context, store Store, logger *zap.Logger) (*Manager, error) {
	cfg, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule config: %w", err)
	}
	return &Manager{
		store:   store,
		logger:  logger,
		current: cfg,
	}, nil
}

// Current returns the cached configuration.
func (m *Manager) Current() model.ScheduleConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update persists the new configuration synchronously, then broadcasts it.
func (m *Manager) Update(ctx context.Context, cfg model.ScheduleConfig) error {
	if err := m.store.Save(ctx, cfg); err != nil {
		return fmt.Errorf("save schedule config: %w", err)
	}

	m.mu.Lock()
	m.current = cfg
	subs := make([]chan model.ScheduleConfig, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- cfg:
		default:
			// a slow consumer keeps its stale view until it drains; it can
			// always fall back to Current()
			m.logger.Warn("schedule config subscriber is not draining, skipping notify")
		}
	}

	m.logger.Info("schedule config updated",
		zap.Int("grades", len(cfg.Grades)),
		zap.String("global_booking_mode", string(cfg.GlobalBookingMode)),
	)
	return nil
}

// Subscribe returns a channel that receives every saved configuration.
func (m *Manager) Subscribe() <-chan model.ScheduleConfig {
	ch := make(chan model.ScheduleConfig, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}
