// Package scheduler drives the reminder dispatch cycle on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/fx"

	"chime/config"
	"chime/internal/delivery"
	deliverycontext "chime/internal/delivery/context"
	"chime/internal/domain/lifecycle"
	"chime/internal/errors"
	"chime/internal/usecase"
)

// Params holds dependencies for the scheduler delivery, injected by Fx.
type Params struct {
	fx.In

	Lc       fx.Lifecycle
	Config   *config.Config
	Dispatch usecase.DispatchUsecase
	Logger   *slog.Logger
}

// Scheduler ticks the dispatch usecase until stopped. A cycle runs once right at start.
type Scheduler struct {
	dispatch usecase.DispatchUsecase
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	started bool
}

// NewScheduler creates the scheduler delivery and registers its stop hook.
func NewScheduler(params Params) delivery.Delivery {
	s := newScheduler(params.Dispatch, params.Config.Notification.PollInterval(), params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: s.Stop,
	})

	return s
}

func newScheduler(dispatch usecase.DispatchUsecase, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		dispatch: dispatch,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Serve blocks, running a dispatch cycle per tick, until Stop is called or ctx ends.
func (s *Scheduler) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()

		return errors.New("scheduler already started")
	}
	s.started = true
	s.mu.Unlock()

	defer close(s.done)

	s.logger.Info("[Scheduler] started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-s.stopCh:
			s.logger.Info("[Scheduler] stopped")

			return nil
		case <-ctx.Done():
			s.logger.Info("[Scheduler] stopped", slog.Any("reason", ctx.Err()))

			return nil
		case tick := <-ticker.C:
			if misfired(tick, time.Now(), s.interval) {
				s.logger.Warn("[Scheduler] tick missed its grace period, dropped", slog.Time("tick", tick))

				continue
			}
			s.runOnce(ctx)
		}
	}
}

// Stop stops taking new ticks and waits for the in-flight cycle, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.done:
		return nil
	case <-stopCtx.Done():
		return errors.Wrap(stopCtx.Err(), "scheduler did not stop in time")
	}
}

// runOnce triggers one cycle. Errors and panics are logged so the ticker keeps going.
func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("[Scheduler] dispatch cycle panicked", slog.Any("panic", r))
		}
	}()

	ctx, _ = deliverycontext.EnsureRequestID(ctx, s.logger, "tick")
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	// The cycle detaches from ctx itself, so shutdown never interrupts a commit.
	report, err := s.dispatch.TryDispatchDue(ctx)
	switch {
	case errors.Is(err, usecase.ErrCycleInProgress):
		logger.Debug("[Scheduler] previous cycle still running, tick skipped")
	case err != nil:
		logger.Error("[Scheduler] dispatch cycle failed", slog.Any("error", err), slog.String("origin", errors.Origin(err)))
	case report != nil && report.Selected > 0:
		logger.Debug("[Scheduler] tick finished",
			slog.Int("selected", report.Selected),
			slog.Int("dispatched", report.Dispatched),
		)
	}
}

// misfired reports whether a tick delivered at now is older than the grace of one interval.
func misfired(tick, now time.Time, interval time.Duration) bool {
	return now.Sub(tick) > interval
}
