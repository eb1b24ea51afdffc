package repository

import (
	"context"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/ports"
)

// NotificationRepositoryImpl serves a fixed notification history
type NotificationRepositoryImpl struct {
	notifications []entities.Notification
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(seed []entities.Notification) ports.NotificationRepository {
	return &NotificationRepositoryImpl{
		notifications: append([]entities.Notification(nil), seed...),
	}
}

func (r *NotificationRepositoryImpl) List(ctx context.Context) ([]entities.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]entities.Notification{}, r.notifications...), nil
}

func (r *NotificationRepositoryImpl) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(r.notifications), nil
}
