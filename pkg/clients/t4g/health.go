package t4g

import (
	"context"
	"fmt"
	"io"
	"net/http"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

// GetHealth fetches the backend's full health report.
func (c *Client) GetHealth(ctx context.Context) (*api.HealthResponse, error) {
	var health api.HealthResponse
	if err := c.request(ctx, http.MethodGet, "/health", nil, nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// PingHealth issues a lightweight HEAD probe against /health. It bypasses
// retry and auth entirely: the network monitor supplies its own cadence
// and deadline, and a probe must observe the backend as-is rather than
// mask a flap behind retries.
func (c *Client) PingHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.ObserveProbe(false)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if c.metrics != nil {
		c.metrics.ObserveProbe(ok)
	}
	if !ok {
		return fmt.Errorf("%w: health probe returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
