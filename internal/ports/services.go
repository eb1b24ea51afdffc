package ports

import (
	"context"
	"time"

	"github.com/alarmclock/core/internal/domain/entities"
)

// ViewService interface for the view state store
type ViewService interface {
	Snapshot(ctx context.Context) (*entities.ViewSnapshot, error)
	ToggleAlarm(ctx context.Context, id string) (*entities.ViewSnapshot, error)
	SetSearchQuery(ctx context.Context, query string) (*entities.ViewSnapshot, error)
	SetNotificationsVisible(ctx context.Context, visible bool) (*entities.ViewSnapshot, error)
	ToggleNotifications(ctx context.Context) (*entities.ViewSnapshot, error)
	SearchAlarms(ctx context.Context, query string) ([]entities.Alarm, error)
	Notifications(ctx context.Context) ([]entities.Notification, error)
	SetCurrentTime(t time.Time)
	CurrentTime() time.Time
}

// ClockService interface for the recurring clock ticker
type ClockService interface {
	Start() error
	Stop() context.Context
	Tick()
}

// FormService interface for the alarm creation dialog
type FormService interface {
	Open(ctx context.Context) (*FormState, error)
	Close(ctx context.Context) (*FormState, error)
	State(ctx context.Context) (*FormState, error)
	UpdateDraft(ctx context.Context, req UpdateDraftRequest) (*FormState, error)
	ToggleDay(ctx context.Context, day string) (*FormState, error)
	Save(ctx context.Context) (*entities.Alarm, error)
}

// Request/Response Types

type SearchRequest struct {
	Query string `json:"query" form:"query"`
}

type ScreenRequest struct {
	Notifications bool `json:"notifications" form:"notifications"`
}

type UpdateDraftRequest struct {
	Time  *string `json:"time" form:"time" validate:"omitempty,max=200"`
	Label *string `json:"label" form:"label" validate:"omitempty,max=200"`
}

// FormState is the creation dialog as seen by the view
type FormState struct {
	Open  bool           `json:"open"`
	Draft entities.Draft `json:"draft"`
}
