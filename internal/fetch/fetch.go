// Package fetch provides the single retrying HTTP GET used by both the
// feed harvester and the article extractor: bounded attempts, exponential
// backoff with jitter, a rotating User-Agent pool, and shared politeness
// pacing across all outbound requests.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"github.com/defwatch/defwatch/internal/config"
	"github.com/defwatch/defwatch/internal/logger"
)

// ErrNotFound marks a terminal HTTP 404; retrying cannot help.
var ErrNotFound = errors.New("resource not found")

// Response is a fetched HTTP body with its status metadata.
type Response struct {
	Body        []byte
	StatusCode  int
	ContentType string
}

// Client performs paced, retrying GETs.
type Client struct {
	cfg     config.FetchConfig
	limiter *rate.Limiter
}

// New creates a Client from fetch configuration. The rate limiter is owned
// by the client, so one client shared across components paces every
// request it issues.
func New(cfg config.FetchConfig) *Client {
	return &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Get fetches a URL, retrying transient failures up to the configured
// attempt limit. HTTP 404 is terminal; other non-2xx statuses, timeouts,
// and connection errors are retried. The User-Agent rotates between
// attempts to reduce block rate.
func (c *Client) Get(ctx context.Context, url string) (Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return Response{}, fmt.Errorf("fetch cancelled: %w", err)
		}

		resp, err := c.fetchOnce(url, c.userAgent(attempt))
		if err == nil {
			if attempt > 1 {
				logger.Debug("fetch succeeded after retry", "url", url, "attempt", attempt)
			}
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return resp, err
		}
		if attempt == c.cfg.MaxAttempts {
			break
		}

		delay := c.backoff(attempt)
		logger.Debug("fetch attempt failed, backing off",
			"url", url, "attempt", attempt, "error", err, "delay", delay)

		select {
		case <-ctx.Done():
			return Response{}, fmt.Errorf("fetch cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return Response{}, fmt.Errorf("fetch failed after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

// fetchOnce performs a single GET with a fresh collector, mirroring the
// one-collector-per-request pattern so state never leaks between fetches.
func (c *Client) fetchOnce(url, userAgent string) (Response, error) {
	var resp Response
	var fetchErr error

	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	collector.SetRequestTimeout(c.cfg.Timeout)

	collector.OnResponse(func(r *colly.Response) {
		resp.StatusCode = r.StatusCode
		resp.ContentType = r.Headers.Get("Content-Type")
		resp.Body = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			resp.StatusCode = r.StatusCode
		}
		fetchErr = err
	})

	if err := collector.Visit(url); err != nil && fetchErr == nil {
		fetchErr = err
	}

	if fetchErr != nil {
		if resp.StatusCode == http.StatusNotFound {
			return resp, fmt.Errorf("%s: %w", url, ErrNotFound)
		}
		return resp, fmt.Errorf("fetch %s: %w", url, fetchErr)
	}

	return resp, nil
}

// userAgent rotates through the configured pool by attempt number.
func (c *Client) userAgent(attempt int) string {
	agents := c.cfg.UserAgents
	if len(agents) == 0 {
		return "defwatch/1.0"
	}
	return agents[(attempt-1)%len(agents)]
}

// backoff computes the exponential delay with +/-25% jitter, capped at the
// configured maximum.
func (c *Client) backoff(attempt int) time.Duration {
	delay := float64(c.cfg.BaseDelay) * math.Pow(2, float64(attempt-1))
	if limit := float64(c.cfg.MaxDelay); limit > 0 && delay > limit {
		delay = limit
	}
	delay *= 1 + (rand.Float64()-0.5)*0.5
	return time.Duration(delay)
}

func isRetryable(err error) bool {
	return !errors.Is(err, ErrNotFound)
}
