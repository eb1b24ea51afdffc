package http

import (
	"github.com/alarmclock/core/internal/domain/entities"
)

// ViewResponse is a view snapshot plus the formatted clock
type ViewResponse struct {
	*entities.ViewSnapshot
	Clock string `json:"clock"`
	Date  string `json:"date"`
}

// AlarmListResponse wraps a filtered alarm list
type AlarmListResponse struct {
	Query  string           `json:"query"`
	Alarms []entities.Alarm `json:"alarms"`
	Total  int              `json:"total"`
}

// NotificationListResponse wraps the notification history
type NotificationListResponse struct {
	Notifications []entities.Notification `json:"notifications"`
	Total         int                     `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
