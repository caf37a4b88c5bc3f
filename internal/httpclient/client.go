// Package httpclient paces outbound calls to third-party APIs.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cesargomez89/praiseteam/internal/constants"
)

// Client wraps an http.Client with a minimum spacing between requests and
// an optional bounded retry on throttling responses.
type Client struct {
	httpClient *http.Client

	minRequestInterval time.Duration
	attempts           int
	retryBase          time.Duration

	nextAllowed time.Time
	mu          sync.Mutex
}

type Option func(*Client)

// WithAttempts sets how many times a request is tried. One means no retry.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryBase sets the linear backoff step between attempts.
func WithRetryBase(d time.Duration) Option {
	return func(c *Client) { c.retryBase = d }
}

// NewClient creates a paced HTTP client. A nil httpClient gets a pooled
// client with the default timeout.
func NewClient(httpClient *http.Client, minRequestInterval time.Duration, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	c := &Client{
		httpClient:         httpClient,
		minRequestInterval: minRequestInterval,
		attempts:           constants.DefaultRetryCount,
		retryBase:          constants.DefaultRetryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req once its time slot arrives. Throttling responses (429, 503)
// push the next slot back by Retry-After and are retried while attempts
// remain; on the final attempt the response is returned to the caller.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*c.retryBase); err != nil {
				return nil, err
			}
		}
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}

		if retryAfter := parseRetryAfter(resp); retryAfter > 0 {
			c.deferUntil(time.Now().Add(retryAfter))
		}
		if attempt == c.attempts-1 {
			return resp, nil
		}
		_ = resp.Body.Close()
		lastErr = fmt.Errorf("rate limited (status %d)", resp.StatusCode)
	}
	return nil, lastErr
}

// wait claims the next request slot and sleeps until it opens.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	slot := now
	if c.nextAllowed.After(now) {
		slot = c.nextAllowed
	}
	c.nextAllowed = slot.Add(c.minRequestInterval)
	c.mu.Unlock()

	return sleep(ctx, slot.Sub(now))
}

func (c *Client) deferUntil(t time.Time) {
	c.mu.Lock()
	if c.nextAllowed.Before(t) {
		c.nextAllowed = t
	}
	c.mu.Unlock()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter reads a Retry-After header and returns the duration to wait.
func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}
