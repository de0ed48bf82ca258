package t4g

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

// ListAdminWallets returns the admin wallet overview. Requires the ADMIN
// role; others get ErrAccessDenied.
func (c *Client) ListAdminWallets(ctx context.Context, params api.ListAdminWalletsParams) ([]api.AdminWalletInfo, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.MinBalance > 0 {
		query.Set("min_balance", strconv.FormatInt(params.MinBalance, 10))
	}

	var wallets []api.AdminWalletInfo
	if err := c.request(ctx, http.MethodGet, "/api/admin/wallets", query, nil, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// GetAdminStats returns platform-wide statistics.
func (c *Client) GetAdminStats(ctx context.Context) (*api.AdminStats, error) {
	var stats api.AdminStats
	if err := c.request(ctx, http.MethodGet, "/api/admin/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
