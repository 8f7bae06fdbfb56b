// Package transport provides the HTTP transport used to reach the gateway.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config configures the HTTP transport.
type Config struct {
	// Timeout bounds the whole round trip. Zero means DefaultTimeout.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification.
	// TLS policy is the caller's decision, not protocol logic.
	InsecureSkipVerify bool
}

// DefaultTimeout is used when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Client posts wire messages over HTTP.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates an HTTP transport.
func New(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	tr := &http.Transport{}
	if cfg.InsecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		logger: logger,
	}
}

// Post sends body to url and returns the raw response body.
// Any non-2xx status is a transport error.
func (c *Client) Post(ctx context.Context, url string, body string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("gateway request failed")
		return "", fmt.Errorf("post to gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}

	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("latency", time.Since(start)).
		Msg("gateway round trip")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return string(raw), nil
}
