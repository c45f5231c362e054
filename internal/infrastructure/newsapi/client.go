// Package newsapi talks to the HTTP news backend that serves the listing and
// per-article detail payloads.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"NewsLens/internal/config"
	"NewsLens/internal/domain"
	"NewsLens/internal/infrastructure/payload"
	"NewsLens/internal/ports"
)

const userAgent = "NewsLens/1.0"

// Client implements ports.NewsSource over HTTP/JSON.
type Client struct {
	baseURL    string
	listPath   string
	detailPath string
	apiKey     string
	http       *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ ports.NewsSource = (*Client)(nil)

// NewClient builds a client from source configuration. A nil httpClient gets
// one with the configured timeout; a zero rate disables limiting.
func NewClient(cfg config.SourceConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		listPath:   cfg.ListPath,
		detailPath: cfg.DetailPath,
		apiKey:     cfg.APIKey,
		http:       httpClient,
		limiter:    limiter,
		logger:     logger,
	}
}

// FetchList loads the coarse listing.
func (c *Client) FetchList(ctx context.Context) ([]domain.RawRecord, error) {
	const op = "fetch list"

	body, err := c.get(ctx, op, c.baseURL+c.listPath)
	if err != nil {
		return nil, err
	}

	items, err := payload.ListItems(body)
	if err != nil {
		return nil, domain.NewTransportError(op, 0, err)
	}

	records, skipped := payload.DecodeRecords(items)
	if skipped > 0 {
		c.logger.Warn("skipped non-object list entries", "count", skipped)
	}
	c.logger.Debug("list fetched", "records", len(records))
	return records, nil
}

// FetchDetail loads the detail payload for id.
func (c *Client) FetchDetail(ctx context.Context, id string) (domain.DetailPayload, error) {
	const op = "fetch detail"

	path := strings.ReplaceAll(c.detailPath, "{id}", url.PathEscape(id))
	body, err := c.get(ctx, op, c.baseURL+path)
	if err != nil {
		return domain.DetailPayload{}, err
	}

	obj, err := payload.DetailObject(body)
	if err != nil {
		return domain.DetailPayload{}, domain.NewTransportError(op, 0, err)
	}
	return payload.DecodeDetail(obj), nil
}

func (c *Client) get(ctx context.Context, op, endpoint string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewTransportError(op, 0, fmt.Errorf("rate limit: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewTransportError(op, 0, fmt.Errorf("build request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(op, 0, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	c.logger.Debug("news api response", "op", op, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.NewTransportError(op, resp.StatusCode,
			fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet))))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return nil, domain.NewTransportError(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return body, nil
}
