package t4g

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients"
	"github.com/Feustey/T4G-sub000/pkg/logging"
	"github.com/Feustey/T4G-sub000/pkg/monitoring"
)

// Client is the Token4Good API client. Every request carries the bearer
// token when one is known; an explicit instance token takes priority over
// the persisted one. A 401 response clears the credential store before the
// error is returned, so session state can never outlive the token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	store      *auth.CredentialStore
	logger     logging.Logger
	retry      clients.RetryConfig
	metrics    *monitoring.ClientMetrics
}

// Config configures the Token4Good client.
type Config struct {
	BaseURL string
	// Token pins an explicit bearer token; when empty the credential
	// store's token is used.
	Token   string
	Store   *auth.CredentialStore
	Timeout time.Duration
	Logger  logging.Logger
	// Retry defaults to a single attempt; the resilient-fetch layer adds
	// bounded retries where the caller opted in.
	Retry                *clients.RetryConfig
	CircuitBreakerConfig *clients.CircuitBreakerConfig
	Metrics              *monitoring.ClientMetrics
}

// NewClient creates a Token4Good API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	retry := clients.RetryConfig{ShouldRetry: clients.DefaultShouldRetry}
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}
	if cfg.CircuitBreakerConfig != nil {
		cbCfg := *cfg.CircuitBreakerConfig
		if cbCfg.Logger == nil {
			cbCfg.Logger = cfg.Logger
		}
		retry.CircuitBreaker = clients.NewCircuitBreaker(cbCfg)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: clients.DefaultTransport(),
		},
		token:   cfg.Token,
		store:   cfg.Store,
		logger:  cfg.Logger,
		retry:   retry,
		metrics: cfg.Metrics,
	}
}

// SetToken pins the token on this instance and persists it to the store.
func (c *Client) SetToken(token string) {
	c.token = token
	if c.store != nil {
		c.store.SetToken(token)
	}
}

// ClearToken drops the instance token and the persisted one.
func (c *Client) ClearToken() {
	c.token = ""
	if c.store != nil {
		c.store.ClearToken()
	}
}

// Token returns the token a request would carry right now.
func (c *Client) Token() (string, bool) {
	if c.token != "" {
		return c.token, true
	}
	if c.store != nil {
		return c.store.Token()
	}
	return "", false
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := clients.DoWithRetry(ctx, c.httpClient, req, c.retry)
	if err != nil {
		c.observe(method, path, 0, time.Since(start))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.ClearToken()
		return ErrNotAuthenticated
	case resp.StatusCode == http.StatusForbidden:
		return ErrAccessDenied
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return c.errorFromBody(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) errorFromBody(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.metrics.ObserveRequest(method, path, label, elapsed)
}
