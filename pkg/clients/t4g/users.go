package t4g

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/validation"
)

// ListUsers returns users matching the given filters.
func (c *Client) ListUsers(ctx context.Context, params api.ListUsersParams) ([]api.User, error) {
	query := url.Values{}
	if params.Role != "" {
		query.Set("role", params.Role)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}

	var users []api.User
	if err := c.request(ctx, http.MethodGet, "/api/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*api.User, error) {
	var user api.User
	if err := c.request(ctx, http.MethodGet, "/api/users/"+id, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error) {
	if err := validation.ValidateCreateUser(req); err != nil {
		return nil, err
	}
	var user api.User
	if err := c.request(ctx, http.MethodPost, "/api/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id string, req api.UpdateUserRequest) (*api.User, error) {
	var user api.User
	if err := c.request(ctx, http.MethodPut, "/api/users/"+id, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/api/users/"+id, nil, nil, nil)
}

// GetUserWallet fetches a user's Lightning wallet overview.
func (c *Client) GetUserWallet(ctx context.Context, id string) (*api.UserWallet, error) {
	var wallet api.UserWallet
	if err := c.request(ctx, http.MethodGet, "/api/users/"+id+"/wallet", nil, nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}
