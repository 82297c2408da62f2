package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const listPageSize = 100

// errUnknownField marks an Airtable 422 for a column the table does
// not have; the sink reacts by degrading the whole run's projection.
var errUnknownField = errors.New("unknown field name")

// Config holds the Airtable REST client configuration.
type Config struct {
	BaseURL string
	Token   string
	BaseID  string
	TableID string

	BatchSize  int
	BatchDelay time.Duration
	Timeout    time.Duration

	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

func newClient(cfg Config, logger *slog.Logger) *client {
	return &client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

func (c *client) tableURL() string {
	return fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, c.cfg.BaseID, url.PathEscape(c.cfg.TableID))
}

// listRecords pages through the whole table.
func (c *client) listRecords(ctx context.Context) ([]record, error) {
	var all []record
	offset := ""

	for {
		u := fmt.Sprintf("%s?pageSize=%d", c.tableURL(), listPageSize)
		if offset != "" {
			u += "&offset=" + url.QueryEscape(offset)
		}

		var page recordPage
		if err := c.do(ctx, http.MethodGet, u, nil, &page); err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}

		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// createRecords and updateRecords write one batch (≤10 rows each per
// the Airtable API).
func (c *client) createRecords(ctx context.Context, recs []record) error {
	return c.do(ctx, http.MethodPost, c.tableURL(), writeRequest{Records: recs}, nil)
}

func (c *client) updateRecords(ctx context.Context, recs []record) error {
	return c.do(ctx, http.MethodPatch, c.tableURL(), writeRequest{Records: recs}, nil)
}

// do performs one request with retries for 429/5xx and network errors.
// Unknown-field 422s surface as errUnknownField without retrying.
func (c *client) do(ctx context.Context, method, rawURL string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		retryable, err := c.doOnce(ctx, method, rawURL, body, out)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err

		if attempt == c.cfg.MaxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("projection request failed, retrying",
			"method", method,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

func (c *client) doOnce(ctx context.Context, method, rawURL string, body []byte, out any) (retryable bool, err error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return false, fmt.Errorf("decode response: %w", err)
			}
		}
		return false, nil
	}

	var apiErr apiError
	_ = json.Unmarshal(respBody, &apiErr)

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity && apiErr.Error.Type == "UNKNOWN_FIELD_NAME":
		return false, fmt.Errorf("%w: %s", errUnknownField, apiErr.Error.Message)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return true, fmt.Errorf("transient status %d: %s", resp.StatusCode, apiErr.Error.Message)
	default:
		return false, fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
}

func (c *client) calculateBackoff(attempt int) time.Duration {
	backoff := c.cfg.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.cfg.MaxBackoff {
		backoff = c.cfg.MaxBackoff
	}
	return backoff
}
