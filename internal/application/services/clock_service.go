package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/infrastructure/metrics"
	"github.com/alarmclock/core/internal/ports"
)

// ErrClockRunning is returned by Start on a clock that was already started.
var ErrClockRunning = errors.New("clock is already running")

// TimeSink receives every clock tick.
type TimeSink interface {
	SetCurrentTime(t time.Time)
}

// ClockService writes the wall-clock time into the view at a fixed cadence.
// Each tick replaces the previous value; there is no drift correction.
type ClockService struct {
	// Now reads the wall clock. It must be set before Start.
	Now func() time.Time

	sink     TimeSink
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewClockService creates a clock that ticks every interval.
// Intervals under one second are rounded up to one second.
func NewClockService(sink TimeSink, interval time.Duration, loc *time.Location, m *metrics.Metrics, logger *logger.Logger) *ClockService {
	if loc == nil {
		loc = time.Local
	}
	return &ClockService{
		Now: func() time.Time {
			return time.Now().In(loc)
		},
		sink:     sink,
		interval: interval,
		metrics:  m,
		logger:   logger.WithComponent("clock"),
	}
}

var _ ports.ClockService = (*ClockService)(nil)

// Start writes the current time immediately and schedules the recurring tick
func (s *ClockService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return ErrClockRunning
	}

	s.Tick()

	cl := cronLogger{s.logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Schedule(cron.Every(s.interval), cron.FuncJob(s.Tick))
	c.Start()
	s.cron = c

	s.logger.Infow("Clock started", "interval", s.interval.String())
	return nil
}

// Stop cancels the recurring tick. The returned context is done once a tick
// that was in flight has returned. Stopping a stopped clock is a no-op.
func (s *ClockService) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	ctx := s.cron.Stop()
	s.cron = nil

	s.logger.Info("Clock stopped")
	return ctx
}

// Tick reads the clock once and writes the value to the sink
func (s *ClockService) Tick() {
	s.sink.SetCurrentTime(s.Now())
	s.metrics.Tick()
}

// cronLogger routes cron's own logging through zap
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.WithError(err).Errorw(msg, keysAndValues...)
}
