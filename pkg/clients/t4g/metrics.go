package t4g

import (
	"context"
	"net/http"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

// GetMetrics returns the public platform metrics.
func (c *Client) GetMetrics(ctx context.Context) (*api.MetricsResponse, error) {
	var metrics api.MetricsResponse
	if err := c.request(ctx, http.MethodGet, "/api/metrics", nil, nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}
