package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/infrastructure/metrics"
	"github.com/alarmclock/core/internal/ports"
)

// FormDefaults configures what a fresh draft and a committed alarm start with
type FormDefaults struct {
	Time  string
	Sound string
}

// FormService handles the "new alarm" dialog and its draft
type FormService struct {
	alarmRepo ports.AlarmRepository
	validate  *validator.Validate
	defaults  FormDefaults
	metrics   *metrics.Metrics
	logger    *logger.Logger

	// NewID generates ids for committed alarms.
	NewID func() string

	mu    sync.Mutex
	open  bool
	draft entities.Draft
}

// NewFormService creates a new form service with the dialog closed
func NewFormService(alarmRepo ports.AlarmRepository, validate *validator.Validate, defaults FormDefaults, m *metrics.Metrics, logger *logger.Logger) *FormService {
	if defaults.Time == "" {
		defaults.Time = entities.DefaultDraftTime
	}
	s := &FormService{
		alarmRepo: alarmRepo,
		validate:  validate,
		defaults:  defaults,
		metrics:   m,
		logger:    logger.WithComponent("form"),
		NewID:     uuid.NewString,
	}
	s.draft = s.freshDraft()
	return s
}

var _ ports.FormService = (*FormService)(nil)

// Open shows the dialog with a default draft
func (s *FormService) Open(ctx context.Context) (*ports.FormState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = true
	s.draft = s.freshDraft()

	s.logger.LogViewAction("open_form", nil)
	return s.stateLocked(), nil
}

// Close hides the dialog and discards the draft
func (s *FormService) Close(ctx context.Context) (*ports.FormState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false
	s.draft = s.freshDraft()

	s.logger.LogViewAction("close_form", nil)
	return s.stateLocked(), nil
}

// State returns the dialog visibility and the current draft
func (s *FormService) State(ctx context.Context) (*ports.FormState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked(), nil
}

// UpdateDraft overwrites the draft fields present in req. Values are not
// checked until Save.
func (s *FormService) UpdateDraft(ctx context.Context, req ports.UpdateDraftRequest) (*ports.FormState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, entities.ErrFormClosed
	}

	if req.Time != nil {
		s.draft.Time = *req.Time
	}
	if req.Label != nil {
		s.draft.Label = *req.Label
	}

	return s.stateLocked(), nil
}

// ToggleDay selects or deselects one repeat weekday in the draft
func (s *FormService) ToggleDay(ctx context.Context, day string) (*ports.FormState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, entities.ErrFormClosed
	}

	if err := s.draft.ToggleDay(day); err != nil {
		return nil, fmt.Errorf("toggle day %q: %w", day, err)
	}

	return s.stateLocked(), nil
}

// Save commits the draft as a new enabled alarm at the end of the collection,
// closes the dialog and resets the draft. On a validation error the dialog
// and draft are left as they were.
func (s *FormService) Save(ctx context.Context) (*entities.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, entities.ErrFormClosed
	}

	if err := s.validate.Struct(s.draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.StructField() == "Time" {
					return nil, fmt.Errorf("%w: %q", entities.ErrInvalidAlarmTime, s.draft.Time)
				}
			}
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidDraft, err)
	}

	alarm := &entities.Alarm{
		ID:      s.NewID(),
		Time:    s.draft.Time,
		Label:   s.draft.Label,
		Enabled: true,
		Repeat:  append([]string{}, s.draft.Repeat...),
		Sound:   s.defaults.Sound,
	}

	if err := s.alarmRepo.Create(ctx, alarm); err != nil {
		return nil, fmt.Errorf("failed to create alarm: %w", err)
	}

	s.open = false
	s.draft = s.freshDraft()

	s.metrics.AlarmCreated()
	if n, err := s.alarmRepo.CountEnabled(ctx); err == nil {
		s.metrics.SetEnabled(n)
	}
	s.logger.Infow("Alarm created", "alarm_id", alarm.ID, "time", alarm.Time, "label", alarm.Label)

	return alarm, nil
}

func (s *FormService) freshDraft() entities.Draft {
	d := entities.NewDraft()
	d.Time = s.defaults.Time
	return d
}

func (s *FormService) stateLocked() *ports.FormState {
	return &ports.FormState{
		Open:  s.open,
		Draft: s.draft.Clone(),
	}
}
