// Package gateway is the typed client for the upstream clinic API. It
// owns no state: every call unwraps the uniform {success, message, data}
// envelope and surfaces failures as typed errors. It never retries and
// never caches.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

// TokenSource yields the current bearer token, when a session exists.
type TokenSource interface {
	Token() (string, bool)
}

// Client wraps HTTP access to the clinic API.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
	log     *logger.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config, tokens TokenSource, m *metrics.Metrics, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				tokens: tokens,
				next:   http.DefaultTransport,
			},
		},
		metrics: m,
		log:     log,
	}
}

// bearerTransport attaches the session token to every outgoing request.
// This is the single cross-cutting interceptor; individual calls never
// touch the Authorization header.
type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		if token, ok := t.tokens.Token(); ok {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.next.RoundTrip(req)
}

// envelope is the uniform wire wrapper around every API response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues a request, unwraps the envelope and decodes data into out
// (out may be nil for calls without a meaningful payload).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, resource, op string) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, query, body, out)
	c.observe(resource, op, start, err)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.NewInternal(fmt.Errorf("failed to marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(raw)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewNetwork("", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetwork("", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			// Non-JSON error pages (proxies, load balancers) still get
			// classified by status below.
			env = envelope{}
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.NewAuth(env.Message, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound {
			return errors.NewNotFound(message, nil)
		}
		return errors.NewNetwork(message, nil)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.NewInternal(fmt.Errorf("failed to decode response data: %w", err))
		}
	}
	return nil
}

// download fetches a raw binary body, bypassing the envelope.
func (c *Client) download(ctx context.Context, path, resource, op string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(resource, op, start, err)
		return nil, errors.NewNetwork("", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		err = errors.NewAuth("", nil)
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = errors.NewNetwork(fmt.Sprintf("download failed with status %d", resp.StatusCode), nil)
	}
	if err != nil {
		c.observe(resource, op, start, err)
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.NewNetwork("", err)
	}
	c.observe(resource, op, start, err)
	return raw, err
}

func (c *Client) observe(resource, op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.GatewayRequests.WithLabelValues(resource, op).Inc()
	c.metrics.GatewayLatency.WithLabelValues(resource, op).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := "network"
		switch {
		case errors.IsAuth(err):
			kind = "auth"
		case errors.IsNotFound(err):
			kind = "not_found"
		}
		c.metrics.GatewayFailures.WithLabelValues(resource, op, kind).Inc()
	}
}
