// Package telegram delivers notifications to a Telegram chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"NewsLens/internal/ports"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	messageTimeout = 5 * time.Second
)

var errMisconfigured = errors.New("telegram notifier misconfigured")

// Option adjusts a Notifier.
type Option func(*Notifier)

// WithAPIBase points the notifier at a different Bot API host.
func WithAPIBase(base string) Option {
	return func(n *Notifier) {
		if base != "" {
			n.apiBase = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) Option {
	return func(n *Notifier) {
		if client != nil {
			n.client = client
		}
	}
}

// Notifier posts notifications through the Bot API. Messages are sent in the
// background; Flush waits for the ones still in flight.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[chan struct{}]struct{}
}

var (
	_ ports.Notifier = (*Notifier)(nil)
	_ ports.Flusher  = (*Notifier)(nil)
)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string, logger *slog.Logger, opts ...Option) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	n := &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: messageTimeout},
		logger:   logger,
		inflight: make(map[chan struct{}]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) NotifySuccess(ctx context.Context, message string) {
	n.dispatch(ctx, "✅ "+message)
}

func (n *Notifier) NotifyError(ctx context.Context, message string) {
	n.dispatch(ctx, "⚠️ "+message)
}

// Flush blocks until messages dispatched so far are delivered or ctx is done.
func (n *Notifier) Flush(ctx context.Context) error {
	n.mu.Lock()
	pending := make([]chan struct{}, 0, len(n.inflight))
	for done := range n.inflight {
		pending = append(pending, done)
	}
	n.mu.Unlock()

	for _, done := range pending {
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("flush telegram notifications: %w", ctx.Err())
		}
	}
	return nil
}

func (n *Notifier) dispatch(ctx context.Context, text string) {
	if n.botToken == "" || n.chatID == "" {
		n.logger.Warn("telegram notification dropped", "error", errMisconfigured)
		return
	}

	form := url.Values{
		"chat_id":                  {n.chatID},
		"text":                     {text},
		"disable_web_page_preview": {"true"},
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)

	done := make(chan struct{})
	n.mu.Lock()
	n.inflight[done] = struct{}{}
	n.mu.Unlock()

	go func() {
		defer func() {
			n.mu.Lock()
			delete(n.inflight, done)
			n.mu.Unlock()
			close(done)
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), messageTimeout)
		defer cancel()

		if err := n.post(ctx, endpoint, form); err != nil {
			n.logger.Warn("telegram notification failed", "error", err)
		}
	}()
}

func (n *Notifier) post(ctx context.Context, endpoint string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendMessage: unexpected status %s", resp.Status)
	}
	return nil
}
