package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp keeps Load from picking up a stray .env file.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, time.Second, cfg.Clock.TickInterval)
	assert.Equal(t, "ru_RU", cfg.Clock.Locale)
	assert.Equal(t, "09:00", cfg.Form.DefaultTime)
	assert.Equal(t, "Радар", cfg.Form.DefaultSound)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.App.IsDevelopment())
	assert.False(t, cfg.App.IsProduction())

	loc, err := cfg.Clock.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CLOCK_TICK_INTERVAL", "5s")
	t.Setenv("CLOCK_TIMEZONE", "Europe/Moscow")
	t.Setenv("FORM_DEFAULT_TIME", "06:30")
	t.Setenv("ENABLE_METRICS", "false")
	t.Setenv("APP_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Clock.TickInterval)
	assert.Equal(t, "06:30", cfg.Form.DefaultTime)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.App.IsProduction())

	loc, err := cfg.Clock.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"zero tick", "CLOCK_TICK_INTERVAL", "0s"},
		{"unknown timezone", "CLOCK_TIMEZONE", "Mars/Olympus"},
		{"bad default time", "FORM_DEFAULT_TIME", "9am"},
		{"no rate limit", "RATE_LIMIT_REQUESTS", "0"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env", []byte("FORM_DEFAULT_SOUND=Восход\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FORM_DEFAULT_SOUND") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Восход", cfg.Form.DefaultSound)
}
