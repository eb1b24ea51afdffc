package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/infrastructure/metrics"
	"github.com/alarmclock/core/internal/ports"
)

// ViewService owns the state of the single alarm clock screen: the current
// clock value, the search query and which list is visible. Alarms and
// notifications live in their repositories.
type ViewService struct {
	alarmRepo        ports.AlarmRepository
	notificationRepo ports.NotificationRepository
	metrics          *metrics.Metrics
	logger           *logger.Logger

	mu     sync.RWMutex
	now    time.Time
	query  string
	screen entities.Screen
}

// NewViewService creates a new view service showing the alarm list
func NewViewService(alarmRepo ports.AlarmRepository, notificationRepo ports.NotificationRepository, m *metrics.Metrics, logger *logger.Logger) *ViewService {
	return &ViewService{
		alarmRepo:        alarmRepo,
		notificationRepo: notificationRepo,
		metrics:          m,
		logger:           logger.WithComponent("view"),
		screen:           entities.ScreenList,
	}
}

var _ ports.ViewService = (*ViewService)(nil)

// Snapshot returns the current view state with the alarm list already filtered
func (s *ViewService) Snapshot(ctx context.Context) (*entities.ViewSnapshot, error) {
	s.mu.RLock()
	now, query, screen := s.now, s.query, s.screen
	s.mu.RUnlock()

	alarms, err := s.alarmRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}

	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	filtered := FilterAlarms(alarms, query)

	return &entities.ViewSnapshot{
		CurrentTime:       now,
		Screen:            screen,
		SearchQuery:       query,
		Alarms:            filtered,
		Notifications:     notifications,
		NotificationCount: len(notifications),
		Empty:             screen == entities.ScreenList && len(filtered) == 0,
	}, nil
}

// ToggleAlarm flips the enabled flag of the alarm with the given id.
// An unknown id leaves the collection untouched.
func (s *ViewService) ToggleAlarm(ctx context.Context, id string) (*entities.ViewSnapshot, error) {
	found, err := s.alarmRepo.Mutate(ctx, id, func(a *entities.Alarm) {
		a.Toggle()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle alarm: %w", err)
	}

	s.metrics.Toggle(found)
	s.logger.LogViewAction("toggle_alarm", map[string]interface{}{
		"alarm_id": id,
		"found":    found,
	})

	if found {
		s.RefreshMetrics(ctx)
	}

	return s.Snapshot(ctx)
}

// SetSearchQuery replaces the search query
func (s *ViewService) SetSearchQuery(ctx context.Context, query string) (*entities.ViewSnapshot, error) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()

	s.metrics.Search()
	s.logger.LogViewAction("set_search_query", map[string]interface{}{
		"query": query,
	})

	return s.Snapshot(ctx)
}

// SetNotificationsVisible switches between the alarm list and the notification list
func (s *ViewService) SetNotificationsVisible(ctx context.Context, visible bool) (*entities.ViewSnapshot, error) {
	screen := entities.ScreenList
	if visible {
		screen = entities.ScreenNotifications
	}

	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()

	s.metrics.Screen(string(screen))
	s.logger.LogViewAction("set_screen", map[string]interface{}{
		"screen": screen,
	})

	return s.Snapshot(ctx)
}

// ToggleNotifications flips the visible screen, as the bell button does
func (s *ViewService) ToggleNotifications(ctx context.Context) (*entities.ViewSnapshot, error) {
	s.mu.RLock()
	visible := s.screen == entities.ScreenNotifications
	s.mu.RUnlock()

	return s.SetNotificationsVisible(ctx, !visible)
}

// SearchAlarms filters the current collection by query without touching the stored query
func (s *ViewService) SearchAlarms(ctx context.Context, query string) ([]entities.Alarm, error) {
	alarms, err := s.alarmRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}
	return FilterAlarms(alarms, query), nil
}

// Notifications returns the notification history
func (s *ViewService) Notifications(ctx context.Context) ([]entities.Notification, error) {
	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// SetCurrentTime replaces the displayed clock value
func (s *ViewService) SetCurrentTime(t time.Time) {
	s.mu.Lock()
	s.now = t
	s.mu.Unlock()
}

// CurrentTime returns the last clock value written by the ticker
func (s *ViewService) CurrentTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// RefreshMetrics recounts enabled alarms into the metrics gauge
func (s *ViewService) RefreshMetrics(ctx context.Context) {
	n, err := s.alarmRepo.CountEnabled(ctx)
	if err != nil {
		s.logger.Warnw("Failed to count enabled alarms", "error", err)
		return
	}
	s.metrics.SetEnabled(n)
}
