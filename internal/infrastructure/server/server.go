package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/alarmclock/core/docs"
	httpHandlers "github.com/alarmclock/core/internal/adapters/http"
	"github.com/alarmclock/core/internal/adapters/repository"
	"github.com/alarmclock/core/internal/application/services"
	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/config"
	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/infrastructure/metrics"
	"github.com/alarmclock/core/internal/infrastructure/validation"
)

// Server represents the HTTP server and the view it serves
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics

	clock *services.ClockService

	ready atomic.Bool
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance with a freshly seeded view
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, fmt.Errorf("clock timezone: %w", err)
	}

	renderer, err := httpHandlers.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	e := echo.New()

	validate := validation.New()
	e.Validator = &CustomValidator{validator: validate}
	e.Renderer = renderer

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	m := metrics.New()

	// Initialize repositories
	alarmRepo := repository.NewAlarmRepository(entities.SeedAlarms())
	notificationRepo := repository.NewNotificationRepository(entities.SeedNotifications())

	// Initialize services
	viewService := services.NewViewService(alarmRepo, notificationRepo, m, appLogger)
	formService := services.NewFormService(alarmRepo, validate, services.FormDefaults{
		Time:  cfg.Form.DefaultTime,
		Sound: cfg.Form.DefaultSound,
	}, m, appLogger)
	clockService := services.NewClockService(viewService, cfg.Clock.TickInterval, loc, m, appLogger)

	// Initialize handlers
	presenter := httpHandlers.NewPresenter(cfg.Clock.Locale, loc)
	viewHandler := httpHandlers.NewViewHandler(viewService, presenter, appLogger)
	formHandler := httpHandlers.NewFormHandler(formService, appLogger)
	pageHandler := httpHandlers.NewPageHandler(viewService, formService, presenter, appLogger)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		metrics: m,
		clock:   clockService,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupRoutes(viewHandler, formHandler, pageHandler)

	viewService.RefreshMetrics(context.Background())
	// The first render must not show the zero time even before Start.
	clockService.Tick()

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(viewHandler *httpHandlers.ViewHandler, formHandler *httpHandlers.FormHandler, pageHandler *httpHandlers.PageHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Page
	s.echo.StaticFS("/static", httpHandlers.StaticFS())
	s.echo.GET("/", pageHandler.Index)

	ui := s.echo.Group("/ui")
	ui.POST("/search", pageHandler.Search)
	ui.POST("/alarms/:id/toggle", pageHandler.ToggleAlarm)
	ui.POST("/notifications/toggle", pageHandler.ToggleNotifications)
	ui.POST("/notifications/close", pageHandler.CloseNotifications)
	ui.POST("/form/open", pageHandler.OpenForm)
	ui.POST("/form/close", pageHandler.CloseForm)
	ui.POST("/form/days/:day/toggle", pageHandler.ToggleDay)
	ui.POST("/form/save", pageHandler.SaveForm)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	v1.GET("/view", viewHandler.GetView)
	v1.PUT("/search", viewHandler.SetSearch)
	v1.PUT("/screen", viewHandler.SetScreen)
	v1.GET("/notifications", viewHandler.ListNotifications)

	alarmGroup := v1.Group("/alarms")
	alarmGroup.GET("", viewHandler.ListAlarms)
	alarmGroup.POST("/:id/toggle", viewHandler.ToggleAlarm)

	formGroup := v1.Group("/form")
	formGroup.GET("", formHandler.GetForm)
	formGroup.PATCH("", formHandler.UpdateDraft)
	formGroup.POST("/open", formHandler.OpenForm)
	formGroup.POST("/close", formHandler.CloseForm)
	formGroup.POST("/days/:day/toggle", formHandler.ToggleDay)
	formGroup.POST("/save", formHandler.SaveForm)
}

// setupMetrics exposes the registry and records request metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metricsMiddleware())

	metricsHandler := promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if !s.ready.Load() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "clock_not_started",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": s.config.App.Version,
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the clock and then serves HTTP until Shutdown
func (s *Server) Start(address string) error {
	if err := s.clock.Start(); err != nil {
		return fmt.Errorf("start clock: %w", err)
	}
	s.ready.Store(true)

	srv := &http.Server{
		Addr:         address,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the clock and gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	s.ready.Store(false)

	select {
	case <-s.clock.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		default:
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
