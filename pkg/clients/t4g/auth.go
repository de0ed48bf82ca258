package t4g

import (
	"context"
	"net/http"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/validation"
)

// Login authenticates against the backend and, on success, pins the
// returned token on this client and persists it.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	if err := validation.ValidateLogin(req); err != nil {
		return nil, err
	}
	var resp api.LoginResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// RefreshToken exchanges the current token for a fresh one and adopts it.
func (c *Client) RefreshToken(ctx context.Context) (*api.RefreshTokenResponse, error) {
	var resp api.RefreshTokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/refresh", nil, nil, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// ExchangeOAuthCode trades an authorization code for a normalized profile.
// CSRF state validation happens before this call, never here.
func (c *Client) ExchangeOAuthCode(ctx context.Context, provider string, req api.OAuthExchangeRequest) (*api.ProviderProfile, error) {
	var profile api.ProviderProfile
	if err := c.request(ctx, http.MethodPost, "/api/auth/callback/"+provider, nil, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SendMagicLink asks the backend to email a one-time login link.
func (c *Client) SendMagicLink(ctx context.Context, email string) error {
	return c.request(ctx, http.MethodPost, "/api/auth/magic-link/send", nil, api.MagicLinkSendRequest{Email: email}, nil)
}

// VerifyMagicLink redeems a magic-link token for a normalized profile.
func (c *Client) VerifyMagicLink(ctx context.Context, token string) (*api.ProviderProfile, error) {
	var profile api.ProviderProfile
	if err := c.request(ctx, http.MethodPost, "/api/auth/magic-link/verify", nil, api.MagicLinkVerifyRequest{Token: token}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
