package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "climblog/internal/platform/errors"
	"climblog/internal/platform/id"
)

const maxErrorBody = 64 << 10

// Client issues JSON requests against the climbing-log backend.
type Client struct {
	baseURL string
	http    *http.Client
	ids     id.Generator
	logger  *slog.Logger
}

func New(baseURL string, timeout time.Duration, ids id.Generator, logger *slog.Logger) *Client {
	if ids == nil {
		ids = id.UUID{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		ids:     ids,
		logger:  logger,
	}
}

// Request describes one backend call. Token is sent as a bearer credential
// when non-empty; Body is JSON-encoded when non-nil; Out receives the decoded
// 2xx response when non-nil.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Token  string
	Body   any
	Out    any
}

func (c *Client) Do(ctx context.Context, r Request) error {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", r.Method, r.Path, err)
	}
	requestID := c.ids.New()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", r.Method, "path", r.Path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, r.Method, r.Path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request completed",
		"method", r.Method,
		"path", r.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Detail: decodeDetail(raw)}
	}
	if r.Out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.Out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.Path, err)
	}
	return nil
}
