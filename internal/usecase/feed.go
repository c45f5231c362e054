package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"NewsLens/internal/dedupe"
	"NewsLens/internal/domain"
	"NewsLens/internal/ports"
	"NewsLens/internal/store"
)

// FailedLoadMessage is the user-visible text for a failed list refresh.
const FailedLoadMessage = "Failed to load news"

// FeedDeps wires the adapters used to refresh the canonical set.
type FeedDeps struct {
	Source   ports.ListSource
	Store    *store.Store
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// FeedStatus is the user-visible loading state of the list.
type FeedStatus struct {
	Loading  bool
	Err      error
	LoadedAt time.Time
	Count    int
}

// Feed implements the list refresh workflow.
type Feed struct {
	source   ports.ListSource
	store    *store.Store
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	status FeedStatus
}

// NewFeed constructs the refresh use case.
func NewFeed(deps FeedDeps) *Feed {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Feed{
		source:   deps.Source,
		store:    deps.Store,
		notifier: deps.Notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh fetches the listing and rebuilds the canonical set. On failure the
// previous set is kept and the error is exposed through Status until the next
// successful refresh.
func (f *Feed) Refresh(ctx context.Context) error {
	if f.source == nil || f.store == nil {
		return nil
	}

	f.mu.Lock()
	f.status.Loading = true
	f.mu.Unlock()

	raw, err := f.source.FetchList(ctx)
	if err != nil {
		f.mu.Lock()
		f.status.Loading = false
		f.status.Err = err
		f.mu.Unlock()

		f.logger.Error("list refresh failed", "error", err, "transport", domain.IsTransport(err))
		f.notifyError(ctx, FailedLoadMessage)
		return fmt.Errorf("refresh feed: %w", err)
	}

	if n := dedupe.Anonymous(raw); n > 0 {
		f.logger.Warn("records merged under empty key", "count", n, "error", domain.ErrMalformedInput)
	}

	canonical := dedupe.Dedupe(raw)
	f.store.Replace(canonical)

	f.mu.Lock()
	f.status = FeedStatus{LoadedAt: f.now(), Count: len(canonical)}
	f.mu.Unlock()

	f.logger.Info("list refreshed", "received", len(raw), "canonical", len(canonical))
	f.notifySuccess(ctx, fmt.Sprintf("Loaded %d articles", len(canonical)))
	return nil
}

// Status returns the last refresh outcome.
func (f *Feed) Status() FeedStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Feed) notifySuccess(ctx context.Context, message string) {
	if f.notifier != nil {
		f.notifier.NotifySuccess(ctx, message)
	}
}

func (f *Feed) notifyError(ctx context.Context, message string) {
	if f.notifier != nil {
		f.notifier.NotifyError(ctx, message)
	}
}
