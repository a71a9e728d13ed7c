// Package httpclient provides the rate-limited HTTP transport used for all
// catalog API calls.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mcerda31/fanpulse/internal/constants"
)

// Client wraps an http.Client with request spacing and retry on 429/503.
// Retries here are transport-level only: a delivered non-2xx response other
// than a rate limit is returned to the caller untouched.
type Client struct {
	httpClient *http.Client

	minInterval time.Duration
	retryCount  int
	retryBase   time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// New creates a rate-limited client. A nil httpClient gets a conservative
// default with the catalog request timeout.
func New(httpClient *http.Client, minInterval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.CatalogHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	return &Client{
		httpClient:  httpClient,
		minInterval: minInterval,
		retryCount:  constants.DefaultRetryCount,
		retryBase:   constants.DefaultRetryBase,
	}
}

// Do executes req, spacing requests at least minInterval apart and backing
// off on 429/503 responses, honoring Retry-After.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.retryCount; attempt++ {
		if err := c.waitTurn(ctx); err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err == nil && resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}

		wait := time.Duration(attempt+1) * c.retryBase
		if err != nil {
			lastErr = err
		} else {
			retryAfter := parseRetryAfter(resp)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (status %d)", resp.StatusCode)
			if retryAfter > wait {
				wait = retryAfter
			}
			if retryAfter > 0 {
				c.pushBack(retryAfter)
			}
		}

		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// Underlying returns the wrapped *http.Client.
func (c *Client) Underlying() *http.Client {
	return c.httpClient
}

// waitTurn claims the next request slot, sleeping out any remaining interval.
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	next := c.lastRequest.Add(c.minInterval)
	var wait time.Duration
	if now.Before(next) {
		wait = next.Sub(now)
		c.lastRequest = next
	} else {
		c.lastRequest = now
	}
	c.mu.Unlock()

	if wait > 0 {
		return sleep(ctx, wait)
	}
	return nil
}

// pushBack delays the next allowed request after an upstream rate limit.
func (c *Client) pushBack(d time.Duration) {
	c.mu.Lock()
	if next := time.Now().Add(d); c.lastRequest.Before(next) {
		c.lastRequest = next
	}
	c.mu.Unlock()
}

func sleep(ctx context.Context, d time.Duration) error {
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
