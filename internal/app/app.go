package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsLens/internal/config"
	"NewsLens/internal/disclosure"
	"NewsLens/internal/infrastructure/fixture"
	"NewsLens/internal/infrastructure/newsapi"
	"NewsLens/internal/infrastructure/notify"
	"NewsLens/internal/infrastructure/sanitize"
	"NewsLens/internal/infrastructure/scheduler"
	"NewsLens/internal/infrastructure/telegram"
	"NewsLens/internal/logging"
	"NewsLens/internal/ports"
	"NewsLens/internal/provider"
	"NewsLens/internal/store"
	"NewsLens/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Option customises wiring.
type Option func(*options)

type options struct {
	source   ports.NewsSource
	observer func(disclosure.Snapshot)
}

// WithSource bypasses the provider registry.
func WithSource(source ports.NewsSource) Option {
	return func(o *options) { o.source = source }
}

// WithObserver receives every disclosure transition.
func WithObserver(fn func(disclosure.Snapshot)) Option {
	return func(o *options) { o.observer = fn }
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	Store      *store.Store
	Feed       *usecase.Feed
	Disclosure *disclosure.Controller
	notifier   notify.Multi
	refresher  *usecase.Refresher
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger, opts ...Option) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	source := o.source
	if source == nil {
		var err error
		source, err = Providers().Build(cfg.Source, logging.Component(baseLogger, "source."+cfg.Source.Provider))
		if err != nil {
			return nil, err
		}
	}

	st, err := store.New(cfg.Filter.Criteria())
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	notifier := notify.Multi{notify.NewLog(logging.Component(baseLogger, "notify"))}
	if cfg.Notifications.Telegram.Enabled() {
		notifier = append(notifier, telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken,
			cfg.Notifications.Telegram.ChatID,
			logging.Component(baseLogger, "notify.telegram"),
			telegram.WithAPIBase(cfg.Notifications.Telegram.APIBase),
		))
	}

	feed := usecase.NewFeed(usecase.FeedDeps{
		Source:   source,
		Store:    st,
		Notifier: notifier,
		Logger:   logging.Component(baseLogger, "feed"),
	})

	controller := disclosure.New(disclosure.Deps{
		Details:    source,
		Notifier:   notifier,
		Sanitizer:  sanitize.New(),
		Logger:     logging.Component(baseLogger, "disclosure"),
		CloseGrace: cfg.Disclosure.CloseGrace,
		Observer:   o.observer,
	})

	refresher := usecase.NewRefresher(
		scheduler.NewIntervalScheduler(cfg.Refresh.Interval),
		feed,
		logging.Component(baseLogger, "refresher"),
	)

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		Store:      st,
		Feed:       feed,
		Disclosure: controller,
		notifier:   notifier,
		refresher:  refresher,
	}, nil
}

// Providers returns the registry of built-in news sources.
func Providers() *provider.Registry {
	reg := provider.NewRegistry()
	reg.Register(config.ProviderHTTP, func(cfg config.SourceConfig, logger *slog.Logger) (ports.NewsSource, error) {
		return newsapi.NewClient(cfg, nil, logger), nil
	})
	reg.Register(config.ProviderFixture, func(cfg config.SourceConfig, _ *slog.Logger) (ports.NewsSource, error) {
		return fixture.NewSource(cfg.FixturePath), nil
	})
	return reg
}

// Run performs a single list refresh.
func (a *Application) Run(ctx context.Context) error {
	return a.Feed.Refresh(ctx)
}

// Watch refreshes on the configured interval until ctx is done.
func (a *Application) Watch(ctx context.Context) error {
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("start refresher: %w", err)
	}
	<-ctx.Done()

	a.logger.Info("stopping refresher")
	stopCtx := context.WithoutCancel(ctx)
	if err := a.refresher.Stop(stopCtx); err != nil {
		return err
	}
	return a.Close(stopCtx)
}

// Close waits for background notifications to be delivered, bounded by
// shutdownTimeout.
func (a *Application) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := a.notifier.Flush(ctx); err != nil {
		a.logger.Warn("notifications not delivered before shutdown", "error", err)
		return err
	}
	return nil
}
