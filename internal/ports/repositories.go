package ports

import (
	"context"

	"github.com/alarmclock/core/internal/domain/entities"
)

// AlarmRepository defines the interface for the alarm collection.
// List returns alarms in insertion order.
type AlarmRepository interface {
	Create(ctx context.Context, alarm *entities.Alarm) error
	GetByID(ctx context.Context, id string) (*entities.Alarm, error)
	List(ctx context.Context) ([]entities.Alarm, error)
	// Mutate applies fn to the alarm with the given id under the repository lock.
	// It reports false when no alarm has that id.
	Mutate(ctx context.Context, id string, fn func(*entities.Alarm)) (bool, error)
	CountEnabled(ctx context.Context) (int, error)
}

// NotificationRepository defines the interface for the read-only notification history
type NotificationRepository interface {
	List(ctx context.Context) ([]entities.Notification, error)
	Count(ctx context.Context) (int, error)
}
