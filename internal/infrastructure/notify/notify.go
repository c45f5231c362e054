// Package notify provides notification sinks for user-visible messages.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"NewsLens/internal/ports"
)

// Log writes notifications to a structured logger.
type Log struct {
	logger *slog.Logger
}

var _ ports.Notifier = (*Log)(nil)

// NewLog wraps logger; nil discards.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Log{logger: logger}
}

func (l *Log) NotifySuccess(ctx context.Context, message string) {
	l.logger.InfoContext(ctx, message, "notification", "success")
}

func (l *Log) NotifyError(ctx context.Context, message string) {
	l.logger.ErrorContext(ctx, message, "notification", "error")
}

// Multi fans a notification out to every sink.
type Multi []ports.Notifier

var (
	_ ports.Notifier = Multi(nil)
	_ ports.Flusher  = Multi(nil)
)

func (m Multi) NotifySuccess(ctx context.Context, message string) {
	for _, n := range m {
		if n != nil {
			n.NotifySuccess(ctx, message)
		}
	}
}

func (m Multi) NotifyError(ctx context.Context, message string) {
	for _, n := range m {
		if n != nil {
			n.NotifyError(ctx, message)
		}
	}
}

// Flush waits on every member that delivers in the background.
func (m Multi) Flush(ctx context.Context) error {
	var errs []error
	for _, n := range m {
		if f, ok := n.(ports.Flusher); ok {
			errs = append(errs, f.Flush(ctx))
		}
	}
	return errors.Join(errs...)
}
