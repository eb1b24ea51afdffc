package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/ports"
)

// AlarmRepositoryImpl implements the AlarmRepository interface in memory.
// Alarms keep their insertion order.
type AlarmRepositoryImpl struct {
	mu     sync.RWMutex
	alarms []entities.Alarm
	index  map[string]int
}

// NewAlarmRepository creates a new alarm repository seeded with the given alarms
func NewAlarmRepository(seed []entities.Alarm) ports.AlarmRepository {
	r := &AlarmRepositoryImpl{
		alarms: make([]entities.Alarm, 0, len(seed)),
		index:  make(map[string]int, len(seed)),
	}
	for i := range seed {
		// Seeds with a duplicate id are skipped; the first one wins.
		_ = r.insert(seed[i])
	}
	return r
}

func (r *AlarmRepositoryImpl) Create(ctx context.Context, alarm *entities.Alarm) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insert(*alarm); err != nil {
		return fmt.Errorf("create alarm: %w", err)
	}
	return nil
}

func (r *AlarmRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Alarm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("get alarm %q: %w", id, entities.ErrAlarmNotFound)
	}
	alarm := r.alarms[i].Clone()
	return &alarm, nil
}

func (r *AlarmRepositoryImpl) List(ctx context.Context) ([]entities.Alarm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Alarm, len(r.alarms))
	for i := range r.alarms {
		out[i] = r.alarms[i].Clone()
	}
	return out, nil
}

func (r *AlarmRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*entities.Alarm)) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false, nil
	}
	fn(&r.alarms[i])
	// The id is the index key and must not change.
	r.alarms[i].ID = id
	return true, nil
}

func (r *AlarmRepositoryImpl) CountEnabled(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.alarms {
		if a.Enabled {
			n++
		}
	}
	return n, nil
}

func (r *AlarmRepositoryImpl) insert(alarm entities.Alarm) error {
	if _, exists := r.index[alarm.ID]; exists {
		return entities.ErrDuplicateAlarmID
	}
	r.index[alarm.ID] = len(r.alarms)
	r.alarms = append(r.alarms, alarm.Clone())
	return nil
}
