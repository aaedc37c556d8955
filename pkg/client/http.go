// Package client provides a small retrying JSON-over-HTTP client used by one
// service to call another (gateway-svc -> solver-svc, gateway-svc ->
// validation-svc, and so on), replacing the platform's former grpc.ClientConn
// + grpc-ecosystem retry interceptor now that the RPCs are not proto-generated.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config controls how a Client dials and retries a downstream service.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// DefaultConfig returns sane defaults for an internal service-to-service call.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// Client is a minimal JSON client with linear-backoff retry on transient
// failures (connection errors and 5xx/429 responses), mirroring the retry
// policy the platform used to express via grpc_retry.CallOption.
type Client struct {
	cfg Config
	hc  *http.Client
}

// New creates a Client bound to cfg.BaseURL.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

// PostJSON marshals body, POSTs it to path, retries on transient failure, and
// unmarshals the response into out (if out is non-nil).
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	attempts := c.cfg.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.RetryBackoff * time.Duration(attempt)):
			}
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
		if reqErr != nil {
			return fmt.Errorf("build request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := c.hc.Do(req)
		if doErr != nil {
			lastErr = doErr
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(data))
			continue
		}

		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(data))
		}

		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}

	return fmt.Errorf("%s: exhausted retries: %w", path, lastErr)
}
