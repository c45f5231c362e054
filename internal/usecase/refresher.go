package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsLens/internal/ports"
)

// Refresher wires the scheduling driver with the feed refresh.
type Refresher struct {
	driver ports.Scheduler
	feed   *Feed
	logger *slog.Logger
}

// NewRefresher returns a helper to start/stop periodic refreshes.
func NewRefresher(driver ports.Scheduler, feed *Feed, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Refresher{driver: driver, feed: feed, logger: logger}
}

// Start registers the refresh job with the scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if r.driver == nil || r.feed == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := r.feed.Refresh(ctx); err != nil {
			r.logger.Warn("scheduled refresh failed", "trigger", trigger, "error", err)
		}
	}

	return r.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}

	return r.driver.Stop(ctx)
}
