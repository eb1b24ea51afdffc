package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "alarmclock"

// Metrics holds the private registry and every collector the app records into.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ClockTicks     prometheus.Counter
	AlarmToggles   *prometheus.CounterVec
	AlarmsCreated  prometheus.Counter
	SearchQueries  prometheus.Counter
	ScreenSwitches *prometheus.CounterVec
	AlarmsEnabled  prometheus.Gauge
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ClockTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_ticks_total",
			Help:      "Number of clock ticks written to the view",
		}),
		AlarmToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alarm_toggles_total",
				Help:      "Alarm toggle requests by outcome",
			},
			[]string{"result"},
		),
		AlarmsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_created_total",
			Help:      "Alarms committed from the creation form",
		}),
		SearchQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Search query updates",
		}),
		ScreenSwitches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "screen_switches_total",
				Help:      "Screen changes by target screen",
			},
			[]string{"screen"},
		),
		AlarmsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alarms_enabled",
			Help:      "Number of currently enabled alarms",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ClockTicks,
		m.AlarmToggles,
		m.AlarmsCreated,
		m.SearchQueries,
		m.ScreenSwitches,
		m.AlarmsEnabled,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Tick() {
	if m == nil {
		return
	}
	m.ClockTicks.Inc()
}

// Toggle records a toggle; found is false for an unknown alarm id.
func (m *Metrics) Toggle(found bool) {
	if m == nil {
		return
	}
	result := "toggled"
	if !found {
		result = "not_found"
	}
	m.AlarmToggles.WithLabelValues(result).Inc()
}

func (m *Metrics) AlarmCreated() {
	if m == nil {
		return
	}
	m.AlarmsCreated.Inc()
}

func (m *Metrics) Search() {
	if m == nil {
		return
	}
	m.SearchQueries.Inc()
}

func (m *Metrics) Screen(screen string) {
	if m == nil {
		return
	}
	m.ScreenSwitches.WithLabelValues(screen).Inc()
}

func (m *Metrics) SetEnabled(n int) {
	if m == nil {
		return
	}
	m.AlarmsEnabled.Set(float64(n))
}
