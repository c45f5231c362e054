package ports

import (
	"context"
	"time"

	"NewsLens/internal/domain"
)

// ListSource delivers the coarse listing of news records.
type ListSource interface {
	FetchList(ctx context.Context) ([]domain.RawRecord, error)
}

// DetailSource fetches the richer per-item payload by record id.
type DetailSource interface {
	FetchDetail(ctx context.Context, id string) (domain.DetailPayload, error)
}

// NewsSource is a provider able to serve both stages.
type NewsSource interface {
	ListSource
	DetailSource
}

// Notifier surfaces user-visible messages. Calls are fire-and-forget.
type Notifier interface {
	NotifySuccess(ctx context.Context, message string)
	NotifyError(ctx context.Context, message string)
}

// Flusher is implemented by notifiers that deliver in the background.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Scheduler controls when list refreshes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
