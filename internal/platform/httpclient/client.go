// Package httpclient provides the shared HTTP client factory used by
// the native liveness prober and the webhook notifiers.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the per-request timeout. Default: 10 seconds.
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// FollowRedirects controls redirect handling. Liveness probing
	// wants the first response as-is; webhooks follow normally.
	FollowRedirects bool

	// SkipTLSVerify is intentionally absent: probes accept any valid
	// response and invalid TLS still proves the host is listening via
	// the error classification, so no verification bypass is needed.
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		UserAgent:       "deivao-recon/1.0",
		FollowRedirects: true,
	}
}

// Client is a thin wrapper over net/http with a fixed User-Agent.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "deivao-recon/1.0"
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.Timeout,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       30 * time.Second,
	}

	hc := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	if !cfg.FollowRedirects {
		hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		httpClient: hc,
		userAgent:  cfg.UserAgent,
	}
}

// Get performs a GET request with the client's User-Agent.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	return c.httpClient.Do(req)
}

// PostJSON marshals payload and POSTs it as application/json.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
