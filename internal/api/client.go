// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the client of the Pawradise REST backend.
//
// Every call attaches the bearer token of the current browser session and
// runs through a retrying transport guarded by a circuit breaker. A 401
// response to an authenticated call invokes the registered unauthorized
// handler before ErrUnauthorized is returned to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Config holds client settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Breaker      BreakerConfig
}

// BreakerConfig tunes the circuit breaker.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // allowed in half-open state
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open duration before half-open
	FailureRatio float64
	MinRequests  uint32
}

// DefaultConfig returns client defaults for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      15 * time.Second,
		MaxRetries:   2,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		Breaker: BreakerConfig{
			Name:         "pawradise-api",
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			FailureRatio: 0.5,
			MinRequests:  5,
		},
	}
}

// TokenSource returns the bearer token for ctx, or "" when there is none.
type TokenSource func(ctx context.Context) string

// UnauthorizedHandler is invoked with the request context whenever an
// authenticated call is answered with 401.
type UnauthorizedHandler func(ctx context.Context)

type tokenKey struct{}

// WithToken returns a context whose calls carry token instead of the one
// provided by the TokenSource.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token set by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	http           *http.Client
	base           string
	cfg            Config
	breaker        *gobreaker.CircuitBreaker[*http.Response]
	tokens         TokenSource
	onUnauthorized atomic.Pointer[UnauthorizedHandler]
	logger         *slog.Logger
}

// New creates a client. tokens may be nil.
func New(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	c := &Client{
		http:   &http.Client{Transport: transport, Timeout: cfg.Timeout},
		base:   cfg.BaseURL,
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
	c.breaker = newBreaker(cfg.Breaker, logger)
	return c
}

// SetUnauthorizedHandler registers h as the single 401 interceptor.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.onUnauthorized.Store(&h)
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// Ping checks that the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base+"/", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pinging backend: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// public calls carry no token and never trigger the unauthorized handler.
	public bool
}

func (c *Client) token(ctx context.Context) string {
	if t, ok := TokenFromContext(ctx); ok {
		return t
	}
	if c.tokens != nil {
		return c.tokens(ctx)
	}
	return ""
}

// do performs r and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var payload []byte
	if r.body != nil {
		var err error
		if payload, err = json.Marshal(r.body); err != nil {
			return fmt.Errorf("encoding %s %s: %w", r.method, r.path, err)
		}
	}

	target := c.base + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	bearer := ""
	if !r.public {
		bearer = c.token(ctx)
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.send(ctx, r.method, target, payload, bearer)
	})
	if err != nil {
		observe(r.method, 0, start)
		return c.transportError(ctx, err)
	}
	observe(r.method, resp.StatusCode, start)

	if resp.StatusCode == http.StatusUnauthorized && bearer != "" {
		_ = resp.Body.Close()
		if h := c.onUnauthorized.Load(); h != nil {
			(*h)(ctx)
		}
		return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Err: ErrUnauthorized}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// send runs one logical request, retrying idempotent methods on network
// errors and 5xx responses with exponential backoff.
func (c *Client) send(ctx context.Context, method, target string, payload []byte, bearer string) (*http.Response, error) {
	retries := 0
	if idempotent(method) {
		retries = c.cfg.MaxRetries
	}

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			wait := c.cfg.RetryWaitMin * time.Duration(1<<uint(attempt-1))
			if wait > c.cfg.RetryWaitMax {
				wait = c.cfg.RetryWaitMax
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var body io.Reader = http.NoBody
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() == nil && attempt < retries {
				c.logger.Debug("retrying backend call", "method", method, "attempt", attempt+1, "error", err)
				continue
			}
			return nil, err
		}

		if resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented {
			if attempt < retries {
				_ = resp.Body.Close()
				c.logger.Debug("retrying backend call", "method", method, "attempt", attempt+1, "status", resp.StatusCode)
				continue
			}
			return nil, parseError(resp)
		}
		return resp, nil
	}
}

func (c *Client) transportError(ctx context.Context, err error) error {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &Error{Status: http.StatusServiceUnavailable, Code: "CIRCUIT_OPEN", Err: ErrUnavailable}
	case ctx.Err() != nil:
		return fmt.Errorf("api: %w", ctx.Err())
	}
	c.logger.Warn("backend unreachable", "error", err)
	return &Error{Status: http.StatusBadGateway, Code: "TRANSPORT", Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}

func get[T any](ctx context.Context, c *Client, path string, q url.Values) (*T, error) {
	var out T
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func submit[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, request{method: method, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
