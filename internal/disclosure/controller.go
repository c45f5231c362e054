// Package disclosure drives the per-selection preview/detail lifecycle: an
// immediate preview, an asynchronous detail fetch, and a close with a grace
// period. Each selection is tagged with a generation number and any fetch
// completion whose generation is no longer current is dropped.
package disclosure

import (
	"context"
	"html"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"NewsLens/internal/domain"
	"NewsLens/internal/ports"
)

// State is the controller's position in the disclosure lifecycle.
type State string

const (
	StateIdle          State = "idle"
	StatePreviewReady  State = "preview_ready"
	StateDetailPending State = "detail_pending"
	StateDetailReady   State = "detail_ready"
	StateDetailFailed  State = "detail_failed"
	StateClosing       State = "closing"
	StateClosed        State = "closed"
)

// DefaultCloseGrace keeps a closed selection on screen while the view animates out.
const DefaultCloseGrace = 300 * time.Millisecond

// DetailFailedMessage is sent to the notifier when a detail fetch fails.
const DetailFailedMessage = "Could not load the full article. Showing the preview instead."

// Snapshot is an immutable copy of the controller state.
type Snapshot struct {
	Generation uint64
	State      State
	Selection  *domain.ArticleSelection
	Loading    bool
}

// Sanitizer cleans untrusted detail HTML.
type Sanitizer interface {
	Sanitize(content string) string
}

// AfterFunc schedules fn after d and returns a stop function. fn must not be
// invoked synchronously.
type AfterFunc func(d time.Duration, fn func()) (stop func() bool)

// Deps wires the controller collaborators.
type Deps struct {
	Details    ports.DetailSource
	Notifier   ports.Notifier
	Sanitizer  Sanitizer
	Logger     *slog.Logger
	CloseGrace time.Duration
	AfterFunc  AfterFunc
	// Observer receives every transition while the controller lock is held;
	// it must not call back into the Controller.
	Observer func(Snapshot)
}

// Controller owns the active selection.
type Controller struct {
	details   ports.DetailSource
	notifier  ports.Notifier
	sanitizer Sanitizer
	logger    *slog.Logger
	grace     time.Duration
	afterFunc AfterFunc
	observer  func(Snapshot)

	mu         sync.Mutex
	generation uint64
	state      State
	selection  *domain.ArticleSelection
	loading    bool
	cancel     context.CancelFunc
	stopClear  func() bool

	inflight sync.WaitGroup
}

// New builds a controller in the idle state.
func New(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	grace := deps.CloseGrace
	if grace <= 0 {
		grace = DefaultCloseGrace
	}
	after := deps.AfterFunc
	if after == nil {
		after = func(d time.Duration, fn func()) func() bool {
			return time.AfterFunc(d, fn).Stop
		}
	}

	return &Controller{
		details:   deps.Details,
		notifier:  deps.Notifier,
		sanitizer: deps.Sanitizer,
		logger:    logger,
		grace:     grace,
		afterFunc: after,
		observer:  deps.Observer,
		state:     StateIdle,
	}
}

// Select makes rec the active selection. The preview is available in the
// returned snapshot; a record with an id also starts a detail fetch bound to ctx.
func (c *Controller) Select(ctx context.Context, rec domain.Record) Snapshot {
	sel := NewSelection(rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	gen := c.generation
	c.supersedeLocked()

	c.selection = &sel
	c.state = StatePreviewReady
	c.loading = false

	if rec.ID != "" && c.details != nil {
		fetchCtx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		c.state = StateDetailPending
		c.loading = true

		c.inflight.Add(1)
		go c.fetch(fetchCtx, gen, rec.ID)
	}

	c.logger.Debug("article selected", "key", sel.Key, "generation", gen, "state", c.state)
	return c.publishLocked()
}

// Close starts the closing grace period. The selection is ignored by fetch
// completions immediately and cleared once the grace period ends.
func (c *Controller) Close() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection == nil || c.state == StateClosing || c.state == StateClosed {
		return c.snapshotLocked()
	}

	c.generation++
	gen := c.generation
	c.supersedeLocked()
	c.state = StateClosing
	c.stopClear = c.afterFunc(c.grace, func() { c.finishClose(gen) })

	c.logger.Debug("article closing", "key", c.selection.Key, "generation", gen)
	return c.publishLocked()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until every detail fetch goroutine has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) fetch(ctx context.Context, gen uint64, id string) {
	defer c.inflight.Done()

	payload, err := c.details.FetchDetail(ctx, id)
	c.complete(ctx, gen, id, payload, err)
}

func (c *Controller) complete(ctx context.Context, gen uint64, id string, payload domain.DetailPayload, err error) {
	c.mu.Lock()

	if gen != c.generation || c.state != StateDetailPending || c.selection == nil {
		c.logger.Debug("stale detail dropped", "id", id, "generation", gen, "current", c.generation)
		c.mu.Unlock()
		return
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false

	if err != nil {
		c.state = StateDetailFailed
		c.logger.Warn("detail fetch failed", "id", id, "generation", gen, "error", err)
		c.publishLocked()
		c.mu.Unlock()

		if c.notifier != nil {
			c.notifier.NotifyError(context.WithoutCancel(ctx), DetailFailedMessage)
		}
		return
	}

	c.mergeLocked(payload)
	c.state = StateDetailReady
	c.logger.Debug("detail merged", "id", id, "generation", gen, "origin", c.selection.Origin)
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller) mergeLocked(payload domain.DetailPayload) {
	sel := c.selection.Clone()

	if strings.TrimSpace(payload.Content) != "" {
		if content := c.sanitize(payload.Content); strings.TrimSpace(content) != "" {
			sel.Content = content
			sel.Origin = domain.OriginDetail
		}
	}
	if payload.Author != "" {
		sel.Author = payload.Author
	}
	if payload.ReadTime != "" {
		sel.ReadTime = payload.ReadTime
	}
	if payload.Tags != nil {
		sel.Tags = append([]string{}, payload.Tags...)
	}
	if payload.Confidence != 0 && !math.IsNaN(payload.Confidence) && !math.IsInf(payload.Confidence, 0) {
		sel.Confidence = payload.Confidence
	}

	c.selection = &sel
}

func (c *Controller) sanitize(content string) string {
	if c.sanitizer != nil {
		return c.sanitizer.Sanitize(content)
	}
	return "<p>" + html.EscapeString(content) + "</p>"
}

func (c *Controller) finishClose(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.state != StateClosing {
		return
	}

	c.selection = nil
	c.loading = false
	c.state = StateClosed
	c.stopClear = nil
	c.publishLocked()
}

// supersedeLocked detaches whatever the previous generation left running.
// Cancelling the fetch context is advisory; the generation check is what
// keeps late results out.
func (c *Controller) supersedeLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.stopClear != nil {
		c.stopClear()
		c.stopClear = nil
	}
}

func (c *Controller) publishLocked() Snapshot {
	snap := c.snapshotLocked()
	if c.observer != nil {
		c.observer(snap)
	}
	return snap
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Generation: c.generation,
		State:      c.state,
		Loading:    c.loading,
	}
	if c.selection != nil {
		sel := c.selection.Clone()
		snap.Selection = &sel
	}
	return snap
}
