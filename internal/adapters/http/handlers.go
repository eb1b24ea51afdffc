package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/ports"
)

// ViewHandler handles view state requests
type ViewHandler struct {
	viewService ports.ViewService
	presenter   Presenter
	logger      *logger.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(viewService ports.ViewService, presenter Presenter, logger *logger.Logger) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
		presenter:   presenter,
		logger:      logger,
	}
}

// GetView godoc
// @Summary Current view state
// @Tags view
// @Produce json
// @Success 200 {object} ViewResponse
// @Router /view [get]
func (h *ViewHandler) GetView(c echo.Context) error {
	snapshot, err := h.viewService.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Get view failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load view")
	}

	return c.JSON(http.StatusOK, h.viewResponse(snapshot))
}

// ListAlarms godoc
// @Summary Filter alarms by an ad-hoc query
// @Tags alarms
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {object} AlarmListResponse
// @Router /alarms [get]
func (h *ViewHandler) ListAlarms(c echo.Context) error {
	query := c.QueryParam("q")

	alarms, err := h.viewService.SearchAlarms(c.Request().Context(), query)
	if err != nil {
		h.logger.Errorw("List alarms failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve alarms")
	}

	return c.JSON(http.StatusOK, AlarmListResponse{
		Query:  query,
		Alarms: alarms,
		Total:  len(alarms),
	})
}

// ToggleAlarm godoc
// @Summary Flip the enabled flag of an alarm
// @Description Unknown ids are ignored
// @Tags alarms
// @Produce json
// @Param id path string true "Alarm ID"
// @Success 200 {object} ViewResponse
// @Router /alarms/{id}/toggle [post]
func (h *ViewHandler) ToggleAlarm(c echo.Context) error {
	id, err := url.PathUnescape(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid alarm ID")
	}

	snapshot, err := h.viewService.ToggleAlarm(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Toggle alarm failed", "error", err, "alarm_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle alarm")
	}

	return c.JSON(http.StatusOK, h.viewResponse(snapshot))
}

// SetSearch godoc
// @Summary Replace the search query
// @Tags view
// @Accept json
// @Produce json
// @Param request body ports.SearchRequest true "Query"
// @Success 200 {object} ViewResponse
// @Router /search [put]
func (h *ViewHandler) SetSearch(c echo.Context) error {
	var req ports.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	snapshot, err := h.viewService.SetSearchQuery(c.Request().Context(), req.Query)
	if err != nil {
		h.logger.Errorw("Set search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update search")
	}

	return c.JSON(http.StatusOK, h.viewResponse(snapshot))
}

// SetScreen godoc
// @Summary Switch between the alarm list and notifications
// @Tags view
// @Accept json
// @Produce json
// @Param request body ports.ScreenRequest true "Screen"
// @Success 200 {object} ViewResponse
// @Router /screen [put]
func (h *ViewHandler) SetScreen(c echo.Context) error {
	var req ports.ScreenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	snapshot, err := h.viewService.SetNotificationsVisible(c.Request().Context(), req.Notifications)
	if err != nil {
		h.logger.Errorw("Set screen failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to switch screen")
	}

	return c.JSON(http.StatusOK, h.viewResponse(snapshot))
}

// ListNotifications godoc
// @Summary Notification history
// @Tags notifications
// @Produce json
// @Success 200 {object} NotificationListResponse
// @Router /notifications [get]
func (h *ViewHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.viewService.Notifications(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List notifications failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve notifications")
	}

	return c.JSON(http.StatusOK, NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	})
}

func (h *ViewHandler) viewResponse(snapshot *entities.ViewSnapshot) ViewResponse {
	return ViewResponse{
		ViewSnapshot: snapshot,
		Clock:        h.presenter.Clock(snapshot.CurrentTime),
		Date:         h.presenter.Date(snapshot.CurrentTime),
	}
}

// FormHandler handles the alarm creation dialog
type FormHandler struct {
	formService ports.FormService
	logger      *logger.Logger
}

// NewFormHandler creates a new form handler
func NewFormHandler(formService ports.FormService, logger *logger.Logger) *FormHandler {
	return &FormHandler{
		formService: formService,
		logger:      logger,
	}
}

// GetForm godoc
// @Summary Dialog state and draft
// @Tags form
// @Produce json
// @Success 200 {object} ports.FormState
// @Router /form [get]
func (h *FormHandler) GetForm(c echo.Context) error {
	state, err := h.formService.State(c.Request().Context())
	if err != nil {
		return formError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// OpenForm godoc
// @Summary Open the dialog with a default draft
// @Tags form
// @Produce json
// @Success 200 {object} ports.FormState
// @Router /form/open [post]
func (h *FormHandler) OpenForm(c echo.Context) error {
	state, err := h.formService.Open(c.Request().Context())
	if err != nil {
		return formError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// CloseForm godoc
// @Summary Close the dialog and discard the draft
// @Tags form
// @Produce json
// @Success 200 {object} ports.FormState
// @Router /form/close [post]
func (h *FormHandler) CloseForm(c echo.Context) error {
	state, err := h.formService.Close(c.Request().Context())
	if err != nil {
		return formError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// UpdateDraft godoc
// @Summary Overwrite draft fields
// @Tags form
// @Accept json
// @Produce json
// @Param request body ports.UpdateDraftRequest true "Fields"
// @Success 200 {object} ports.FormState
// @Failure 409 {object} ErrorResponse
// @Router /form [patch]
func (h *FormHandler) UpdateDraft(c echo.Context) error {
	var req ports.UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.formService.UpdateDraft(c.Request().Context(), req)
	if err != nil {
		return formError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// ToggleDay godoc
// @Summary Toggle one repeat weekday in the draft
// @Tags form
// @Produce json
// @Param day path string true "Weekday label (Пн..Вс)"
// @Success 200 {object} ports.FormState
// @Failure 400 {object} ErrorResponse
// @Router /form/days/{day}/toggle [post]
func (h *FormHandler) ToggleDay(c echo.Context) error {
	day, err := url.PathUnescape(c.Param("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid weekday")
	}

	state, err := h.formService.ToggleDay(c.Request().Context(), day)
	if err != nil {
		return formError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// SaveForm godoc
// @Summary Commit the draft as a new alarm
// @Tags form
// @Produce json
// @Success 201 {object} entities.Alarm
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /form/save [post]
func (h *FormHandler) SaveForm(c echo.Context) error {
	alarm, err := h.formService.Save(c.Request().Context())
	if err != nil {
		h.logger.Warnw("Save alarm failed", "error", err)
		return formError(err)
	}
	return c.JSON(http.StatusCreated, alarm)
}

// formError maps form service errors to HTTP errors
func formError(err error) error {
	switch {
	case errors.Is(err, entities.ErrFormClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrInvalidAlarmTime),
		errors.Is(err, entities.ErrInvalidDraft),
		errors.Is(err, entities.ErrUnknownWeekday):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Form operation failed").SetInternal(err)
	}
}
