package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/config"
	"github.com/alarmclock/core/internal/infrastructure/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Будильник", Version: "test", Environment: "development"},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true},
		Clock:   config.ClockConfig{TickInterval: time.Second, Timezone: "UTC", Locale: "ru_RU"},
		Form:    config.FormConfig{DefaultTime: "09:00", DefaultSound: "Радар"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(testConfig(), logger.NewNop())
	require.NoError(t, err)
	return srv
}

type viewBody struct {
	Screen            string           `json:"screen"`
	SearchQuery       string           `json:"search_query"`
	Alarms            []entities.Alarm `json:"alarms"`
	NotificationCount int              `json:"notification_count"`
	Empty             bool             `json:"empty"`
	Clock             string           `json:"clock"`
	Date              string           `json:"date"`
}

type formBody struct {
	Open  bool           `json:"open"`
	Draft entities.Draft `json:"draft"`
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv.Handler(), http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_GetView(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/view", "")
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[viewBody](t, rec)
	assert.Equal(t, "list", view.Screen)
	assert.Len(t, view.Alarms, 3)
	assert.Equal(t, 3, view.NotificationCount)
	assert.False(t, view.Empty)
	// New ticks once so the clock is never blank.
	assert.Regexp(t, `^\d{2}:\d{2}$`, view.Clock)
	assert.NotEmpty(t, view.Date)
}

func TestServer_ToggleAlarm(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/alarms/2/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[viewBody](t, rec)
	assert.True(t, view.Alarms[1].Enabled)
	assert.True(t, view.Alarms[0].Enabled)
	assert.True(t, view.Alarms[2].Enabled)

	rec = do(t, h, http.MethodPost, "/api/v1/alarms/2/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[viewBody](t, rec)
	assert.False(t, view.Alarms[1].Enabled)

	rec = do(t, h, http.MethodPost, "/api/v1/alarms/unknown/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[viewBody](t, rec).Alarms, 3)
}

func TestServer_Search(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPut, "/api/v1/search", `{"query":"22:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[viewBody](t, rec)
	require.Len(t, view.Alarms, 1)
	assert.Equal(t, "Время спать", view.Alarms[0].Label)

	rec = do(t, h, http.MethodPut, "/api/v1/search", `{"query":"zzz"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[viewBody](t, rec)
	assert.Empty(t, view.Alarms)
	assert.True(t, view.Empty)

	rec = do(t, h, http.MethodGet, "/api/v1/alarms?q="+url.QueryEscape("утр"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Утренний подъём")
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestServer_Screen(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPut, "/api/v1/screen", `{"notifications":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "notifications", decode[viewBody](t, rec).Screen)

	rec = do(t, h, http.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":3`)
	assert.Contains(t, rec.Body.String(), "BellOff")
}

func TestServer_FormFlow(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/form/save", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/form/open", "")
	require.Equal(t, http.StatusOK, rec.Code)
	form := decode[formBody](t, rec)
	assert.True(t, form.Open)
	assert.Equal(t, "09:00", form.Draft.Time)

	rec = do(t, h, http.MethodPatch, "/api/v1/form", `{"time":"06:45","label":"Пробежка"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/form/days/"+url.PathEscape("Сб")+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Сб"}, decode[formBody](t, rec).Draft.Repeat)

	rec = do(t, h, http.MethodPost, "/api/v1/form/days/Sat/toggle", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/form/save", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	alarm := decode[entities.Alarm](t, rec)
	assert.Equal(t, "06:45", alarm.Time)
	assert.Equal(t, "Пробежка", alarm.Label)
	assert.True(t, alarm.Enabled)
	assert.Equal(t, "Радар", alarm.Sound)

	rec = do(t, h, http.MethodGet, "/api/v1/form", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[formBody](t, rec).Open)

	rec = do(t, h, http.MethodGet, "/api/v1/view", "")
	view := decode[viewBody](t, rec)
	require.Len(t, view.Alarms, 4)
	assert.Equal(t, alarm.ID, view.Alarms[3].ID)
}

func TestServer_FormInvalidTime(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	do(t, h, http.MethodPost, "/api/v1/form/open", "")
	rec := do(t, h, http.MethodPatch, "/api/v1/form", `{"time":"7 утра"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/form/save", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/form", "")
	form := decode[formBody](t, rec)
	assert.True(t, form.Open)
	assert.Equal(t, "7 утра", form.Draft.Time)
}

func TestServer_Page(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Будильник")
	assert.Contains(t, body, "Утренний подъём")
	assert.Contains(t, body, "Поиск будильников")
	assert.Contains(t, body, `data-testid="notification-count">3<`)
	assert.NotContains(t, body, "Новый будильник")

	rec = postForm(t, h, "/ui/search", url.Values{"query": {"zzz"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = do(t, h, http.MethodGet, "/", "")
	assert.Contains(t, rec.Body.String(), "Будильники не найдены")

	postForm(t, h, "/ui/notifications/toggle", nil)
	rec = do(t, h, http.MethodGet, "/", "")
	body = rec.Body.String()
	assert.Contains(t, body, "Уведомления")
	assert.Contains(t, body, "пропущен")
	assert.NotContains(t, body, "Будильники не найдены")

	postForm(t, h, "/ui/notifications/close", nil)
	rec = do(t, h, http.MethodGet, "/", "")
	assert.Contains(t, rec.Body.String(), `value="zzz"`)
}

func TestServer_PageForm(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := postForm(t, h, "/ui/form/open", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(t, h, http.MethodGet, "/", "")
	assert.Contains(t, rec.Body.String(), "Новый будильник")

	rec = postForm(t, h, "/ui/form/days/"+url.PathEscape("Пн")+"/toggle", url.Values{"time": {"05:30"}, "label": {"Рыбалка"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/form", "")
	form := decode[formBody](t, rec)
	assert.Equal(t, "05:30", form.Draft.Time)
	assert.Equal(t, "Рыбалка", form.Draft.Label)
	assert.Equal(t, []string{"Пн"}, form.Draft.Repeat)

	rec = postForm(t, h, "/ui/form/save", url.Values{"time": {"99:99"}, "label": {"Рыбалка"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ЧЧ:ММ")
	assert.Contains(t, rec.Body.String(), "Новый будильник")

	rec = postForm(t, h, "/ui/form/save", url.Values{"time": {"05:30"}, "label": {"Рыбалка"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(t, h, http.MethodGet, "/", "")
	body := rec.Body.String()
	assert.Contains(t, body, "Рыбалка")
	assert.NotContains(t, body, "Новый будильник")
}

func TestServer_PageToggleAlarm(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := postForm(t, h, "/ui/alarms/2/toggle", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/view", "")
	assert.True(t, decode[viewBody](t, rec).Alarms[1].Enabled)
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	do(t, h, http.MethodPost, "/api/v1/alarms/1/toggle", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "alarmclock_clock_ticks_total")
	assert.Contains(t, body, `alarmclock_alarm_toggles_total{result="toggled"} 1`)
	assert.Contains(t, body, "alarmclock_alarms_enabled 1")
	assert.Contains(t, body, "http_requests_total")
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	srv, err := New(cfg, logger.NewNop())
	require.NoError(t, err)

	rec := do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Clock.Timezone = "Nowhere/City"

	_, err := New(cfg, logger.NewNop())
	assert.Error(t, err)
}
