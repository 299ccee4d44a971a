package cron

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// SyncRunner is the reconciliation entry point the scheduler drives.
type SyncRunner interface {
	RunScheduledSync(ctx context.Context) error
}

// Status is the health-check snapshot exposed over the sync-status endpoint.
type Status struct {
	IsRunning      bool `json:"isRunning"`
	IsWeekday      bool `json:"isWeekday"`
	IsWorkingHours bool `json:"isWorkingHours"`
	SyncInProgress bool `json:"syncInProgress"`
}

// AttendanceScheduler ticks once per hour and invokes the attendance sync
// when the current time is inside the weekday working-hours window. A
// boolean in-progress flag keeps a slow run from overlapping the next tick;
// the skipped tick is logged, not queued. The flag is sufficient because the
// scheduler is the only producer of scheduled runs.
type AttendanceScheduler struct {
	runner   SyncRunner
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	syncInProgress atomic.Bool
}

func NewAttendanceScheduler(runner SyncRunner, interval time.Duration) *AttendanceScheduler {
	return &AttendanceScheduler{
		runner:   runner,
		interval: interval,
		now:      time.Now,
	}
}

// Start launches the hourly loop. Calling Start on a running scheduler is a
// no-op.
func (s *AttendanceScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		slog.Warn("Attendance scheduler already running, ignoring start")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	s.wg.Add(1)
	go s.run(ctx)

	slog.Info("Attendance scheduler started", "interval", s.interval)
}

// Stop halts the loop and waits for an in-flight tick to finish. Calling
// Stop on a stopped scheduler is a no-op.
func (s *AttendanceScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	slog.Info("Attendance scheduler stopped")
}

// Status reports the scheduler state and whether the gate conditions hold
// right now.
func (s *AttendanceScheduler) Status() Status {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	now := s.now()
	return Status{
		IsRunning:      running,
		IsWeekday:      isWeekday(now),
		IsWorkingHours: isWorkingHours(now),
		SyncInProgress: s.syncInProgress.Load(),
	}
}

func (s *AttendanceScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First check runs at startup rather than a full interval later.
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *AttendanceScheduler) tick(ctx context.Context) {
	// One bad tick must never kill the recurring job.
	defer func() {
		if r := recover(); r != nil {
			s.syncInProgress.Store(false)
			slog.Error("Attendance sync tick panicked", "panic", r)
		}
	}()

	now := s.now()
	if !isWeekday(now) || !isWorkingHours(now) {
		slog.Debug("Attendance sync skipped outside working window",
			"weekday", isWeekday(now), "working_hours", isWorkingHours(now))
		return
	}

	if !s.syncInProgress.CompareAndSwap(false, true) {
		slog.Warn("Attendance sync still in progress, skipping tick")
		return
	}
	defer s.syncInProgress.Store(false)

	start := time.Now()
	if err := s.runner.RunScheduledSync(ctx); err != nil {
		slog.Error("Attendance sync failed", "error", err, "duration", time.Since(start))
		return
	}
	slog.Info("Attendance sync completed", "duration", time.Since(start))
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

func isWorkingHours(t time.Time) bool {
	return t.Hour() >= 9 && t.Hour() < 18
}
