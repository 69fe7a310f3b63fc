package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/starnav-go/internal/adapters/metrics"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

const (
	defaultBaseURL     = "https://api.spacetraders.io/v2"
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 5
	defaultBackoffBase = time.Second
)

// Client is the rate-limited HTTP core all remote calls go through.
// Rate limit: 2 requests per second with burst of 2.
// Retry: up to 5 attempts with exponential backoff + jitter on 429, 503
// and 5xx; 4xx responses are surfaced immediately.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	token       string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates a client with default settings.
func NewClient(token string) *Client {
	return NewClientWithConfig(defaultBaseURL, token, defaultMaxRetries, defaultBackoffBase, nil)
}

// NewClientWithConfig creates a client with custom configuration.
// If clock is nil, uses RealClock.
func NewClientWithConfig(
	baseURL string,
	token string,
	maxRetries int,
	backoffBase time.Duration,
	clock shared.Clock,
) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 2),
		breaker:     NewCircuitBreaker(10, 30*time.Second, clock),
		baseURL:     baseURL,
		token:       token,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		clock:       clock,
	}
}

// addJitter spreads a backoff between 50% and 150% of its base value to
// avoid synchronized retries across ships.
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// request makes an HTTP request with rate limiting, circuit breaking and
// exponential backoff retries.
func (c *Client) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	return c.breaker.Call(func() error {
		return c.attempt(ctx, method, path, body, result)
	})
}

func (c *Client) attempt(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		reservation := c.clock.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		if waited := c.clock.Now().Sub(reservation); waited > 0 {
			metrics.RecordRateLimitWait(method, path, waited.Seconds())
		}

		var reqBody io.Reader
		if body != nil {
			jsonData, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			reqBody = bytes.NewBuffer(jsonData)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)

		started := c.clock.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network error, retryable
			lastErr = &retryableError{message: fmt.Sprintf("network error: %v", err)}
			metrics.RecordAPIRetry(method, path, "network")

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		metrics.RecordAPIRequest(method, path, resp.StatusCode, c.clock.Now().Sub(started).Seconds())

		if resp.StatusCode == http.StatusTooManyRequests {
			var retryAfterDuration time.Duration
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					retryAfterDuration = time.Duration(seconds) * time.Second
				}
			}

			lastErr = &retryableError{message: "rate limited (429)", retryAfter: retryAfterDuration}
			metrics.RecordAPIRetry(method, path, "429")

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			if retryAfterDuration > 0 {
				// Server-provided Retry-After wins, without jitter
				backoffDelay = retryAfterDuration
			}
			c.clock.Sleep(backoffDelay)
			continue
		}

		if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode >= 500 {
			lastErr = &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
			metrics.RecordAPIRetry(method, path, strconv.Itoa(resp.StatusCode))

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		// 4xx (except 429) and any other non-2xx are not retryable
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}

		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}

		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// retryableError represents an error that triggered a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
