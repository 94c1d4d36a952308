// Package backend talks to the HRM REST backend and normalizes its
// responses into Envelopes and categorized errors.
package backend

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/goccy/go-json"

	"hrmconsole/internal/platform/metrics"
)

const maxResponseBytes = 10 << 20

type Client struct {
	baseURL *url.URL
	http    *http.Client
	metrics *metrics.Collector
}

func New(baseURL string, timeout time.Duration, collector *metrics.Collector) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse backend url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("backend url %q must be http or https", baseURL)
	}
	return &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: timeout},
		metrics: collector,
	}, nil
}

// Do issues one call. The returned envelope is non-nil whenever the body
// could be decoded, including application failures.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	start := time.Now()
	env, outcome, err := c.do(ctx, method, path, query, body)
	c.metrics.RecordBackend(outcome, time.Since(start))
	if err != nil {
		slog.Warn("backend call failed", "method", method, "path", path, "outcome", outcome, "err", err)
	}
	return env, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, string, error) {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, metrics.OutcomeParse, &Error{Kind: ErrParse, Message: "Could not prepare the request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, metrics.OutcomeTransport, &Error{Kind: ErrTransport, Message: "Could not build the request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, metrics.OutcomeTransport, &Error{Kind: ErrTransport, Message: "Network error: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, metrics.OutcomeTransport, &Error{Kind: ErrTransport, Message: "Network error: " + err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if env, decErr := Decode(raw); decErr == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, metrics.OutcomeHTTPStatus, &Error{Kind: ErrHTTPStatus, Status: resp.StatusCode, Message: "Request failed: " + msg}
	}

	env, err := Decode(raw)
	if err != nil {
		return nil, metrics.OutcomeParse, &Error{Kind: ErrParse, Status: resp.StatusCode, Message: "Invalid response from server", Err: err}
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "Operation failed"
		}
		return env, metrics.OutcomeApplication, &Error{Kind: ErrApplication, Status: resp.StatusCode, Message: msg}
	}
	return env, metrics.OutcomeOK, nil
}
