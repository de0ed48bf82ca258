package clients

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// RetryConfig configures bounded HTTP retry behavior. Zero MaxRetries means
// a single attempt. The delay is a fixed interval between attempts unless
// Backoff is set, in which case it grows exponentially up to MaxDelay.
type RetryConfig struct {
	MaxRetries int
	Delay      time.Duration
	Backoff    bool
	MaxDelay   time.Duration
	// ShouldRetry decides whether an attempt's outcome triggers a retry.
	ShouldRetry func(resp *http.Response, err error) bool
	// CircuitBreaker, when set, trips after repeated failures and rejects
	// attempts while open.
	CircuitBreaker *CircuitBreaker
}

// DefaultRetryConfig matches the resilient-fetch defaults: 2 retries with
// a fixed 3-second interval, retrying transport errors and 5xx only.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  2,
		Delay:       3 * time.Second,
		ShouldRetry: DefaultShouldRetry,
	}
}

// DefaultShouldRetry retries transport errors, server errors and rate
// limits. Client errors (4xx other than 429) are never retried.
func DefaultShouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return true
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// newHTTPRetryPolicy builds the failsafe retry policy for a config.
//
//nolint:bodyclose // [*http.Response] is a type parameter here, not a response
func newHTTPRetryPolicy(cfg RetryConfig) retrypolicy.RetryPolicy[*http.Response] {
	// ReturnLastFailure keeps the final response (e.g. a persistent 502)
	// visible to the caller instead of wrapping it in ExceededError; status
	// mapping happens downstream.
	builder := retrypolicy.NewBuilder[*http.Response]().
		WithMaxRetries(cfg.MaxRetries).
		ReturnLastFailure().
		HandleIf(func(resp *http.Response, err error) bool {
			return cfg.ShouldRetry(resp, err)
		})
	if cfg.Backoff {
		maxDelay := cfg.MaxDelay
		if maxDelay <= 0 {
			maxDelay = 5 * time.Second
		}
		builder = builder.WithBackoff(cfg.Delay, maxDelay)
	} else if cfg.Delay > 0 {
		builder = builder.WithDelay(cfg.Delay)
	}
	return builder.Build()
}

// DoWithRetry executes an HTTP request through the retry policy and the
// optional circuit breaker. The request body, if any, is snapshotted so
// every attempt sends a fresh copy.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, cfg RetryConfig) (*http.Response, error) {
	if cfg.ShouldRetry == nil {
		cfg.ShouldRetry = DefaultShouldRetry
	}

	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		_ = req.Body.Close()
	}

	attempts := 0
	attempt := func() (*http.Response, error) {
		attempts++

		var attemptReq *http.Request
		var err error
		if bodyBytes != nil {
			attemptReq, err = http.NewRequestWithContext(ctx, req.Method, req.URL.String(), bytes.NewReader(bodyBytes))
		} else {
			attemptReq, err = http.NewRequestWithContext(ctx, req.Method, req.URL.String(), nil)
		}
		if err != nil {
			return nil, err
		}
		attemptReq.Header = req.Header.Clone()

		resp, err := client.Do(attemptReq)

		// A response that is about to be retried must be drained and closed
		// so the connection can be reused. The final attempt's body is left
		// open for the caller.
		if resp != nil && attempts <= cfg.MaxRetries && cfg.ShouldRetry(resp, err) {
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			resp.Body.Close()
		}
		return resp, err
	}

	policy := newHTTPRetryPolicy(cfg)
	var executor failsafe.Executor[*http.Response]
	if cfg.CircuitBreaker != nil {
		executor = failsafe.With(policy, cfg.CircuitBreaker.Underlying())
	} else {
		executor = failsafe.With(policy)
	}
	return executor.WithContext(ctx).Get(attempt)
}
