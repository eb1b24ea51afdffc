package http

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/ports"
)

//go:embed web
var webFS embed.FS

// TemplateRenderer renders the embedded html templates for echo
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(webFS, "web/templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

// Render implements echo.Renderer
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// StaticFS returns the embedded static assets rooted at their directory
func StaticFS() fs.FS {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

// DayButton is one of the seven repeat toggles in the dialog
type DayButton struct {
	Label    string
	Selected bool
}

// PageData is everything the index template needs
type PageData struct {
	View      *entities.ViewSnapshot
	Form      *ports.FormState
	Clock     string
	Date      string
	Days      []DayButton
	FormError string
}

// PageHandler serves the html screen and its form posts. Every post
// redirects back to the page.
type PageHandler struct {
	viewService ports.ViewService
	formService ports.FormService
	presenter   Presenter
	logger      *logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(viewService ports.ViewService, formService ports.FormService, presenter Presenter, logger *logger.Logger) *PageHandler {
	return &PageHandler{
		viewService: viewService,
		formService: formService,
		presenter:   presenter,
		logger:      logger,
	}
}

// Index renders the screen
func (h *PageHandler) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, "")
}

// Search replaces the query from the search field
func (h *PageHandler) Search(c echo.Context) error {
	var req ports.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if _, err := h.viewService.SetSearchQuery(c.Request().Context(), req.Query); err != nil {
		return err
	}
	return h.back(c)
}

// ToggleAlarm flips one alarm switch
func (h *PageHandler) ToggleAlarm(c echo.Context) error {
	id, err := url.PathUnescape(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid alarm ID")
	}

	if _, err := h.viewService.ToggleAlarm(c.Request().Context(), id); err != nil {
		return err
	}
	return h.back(c)
}

// ToggleNotifications is the bell button
func (h *PageHandler) ToggleNotifications(c echo.Context) error {
	if _, err := h.viewService.ToggleNotifications(c.Request().Context()); err != nil {
		return err
	}
	return h.back(c)
}

// CloseNotifications returns to the alarm list
func (h *PageHandler) CloseNotifications(c echo.Context) error {
	if _, err := h.viewService.SetNotificationsVisible(c.Request().Context(), false); err != nil {
		return err
	}
	return h.back(c)
}

// OpenForm opens the dialog
func (h *PageHandler) OpenForm(c echo.Context) error {
	if _, err := h.formService.Open(c.Request().Context()); err != nil {
		return formError(err)
	}
	return h.back(c)
}

// CloseForm closes the dialog
func (h *PageHandler) CloseForm(c echo.Context) error {
	if _, err := h.formService.Close(c.Request().Context()); err != nil {
		return formError(err)
	}
	return h.back(c)
}

// ToggleDay keeps the typed fields and toggles one weekday
func (h *PageHandler) ToggleDay(c echo.Context) error {
	if err := h.keepDraft(c); err != nil {
		return formError(err)
	}

	day, err := url.PathUnescape(c.Param("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid weekday")
	}

	if _, err := h.formService.ToggleDay(c.Request().Context(), day); err != nil {
		return formError(err)
	}
	return h.back(c)
}

// SaveForm commits the dialog. A rejected draft re-renders the page with
// the dialog still open.
func (h *PageHandler) SaveForm(c echo.Context) error {
	if err := h.keepDraft(c); err != nil {
		return formError(err)
	}

	if _, err := h.formService.Save(c.Request().Context()); err != nil {
		switch {
		case errors.Is(err, entities.ErrInvalidAlarmTime), errors.Is(err, entities.ErrInvalidDraft):
			return h.render(c, http.StatusBadRequest, "Укажите время в формате ЧЧ:ММ")
		default:
			return formError(err)
		}
	}
	return h.back(c)
}

// keepDraft copies the dialog fields posted with the request into the draft
func (h *PageHandler) keepDraft(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	var req ports.UpdateDraftRequest
	if _, ok := params["time"]; ok {
		v := params.Get("time")
		req.Time = &v
	}
	if _, ok := params["label"]; ok {
		v := params.Get("label")
		req.Label = &v
	}
	if req.Time == nil && req.Label == nil {
		return nil
	}
	_, err = h.formService.UpdateDraft(c.Request().Context(), req)
	return err
}

func (h *PageHandler) render(c echo.Context, status int, formMsg string) error {
	ctx := c.Request().Context()

	snapshot, err := h.viewService.Snapshot(ctx)
	if err != nil {
		h.logger.Errorw("Render page failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load view")
	}

	form, err := h.formService.State(ctx)
	if err != nil {
		h.logger.Errorw("Render page failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load form")
	}

	days := make([]DayButton, 0, len(entities.Weekdays))
	for _, d := range entities.Weekdays {
		days = append(days, DayButton{Label: d, Selected: form.Draft.HasDay(d)})
	}

	return c.Render(status, "index", PageData{
		View:      snapshot,
		Form:      form,
		Clock:     h.presenter.Clock(snapshot.CurrentTime),
		Date:      h.presenter.Date(snapshot.CurrentTime),
		Days:      days,
		FormError: formMsg,
	})
}

func (h *PageHandler) back(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}
