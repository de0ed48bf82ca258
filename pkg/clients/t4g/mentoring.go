package t4g

import (
	"context"
	"net/http"
	"net/url"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/validation"
)

// ListMentoringRequests returns mentoring requests matching the filters.
func (c *Client) ListMentoringRequests(ctx context.Context, params api.ListMentoringParams) ([]api.MentoringRequest, error) {
	query := url.Values{}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.MenteeID != "" {
		query.Set("mentee_id", params.MenteeID)
	}
	if params.MentorID != "" {
		query.Set("mentor_id", params.MentorID)
	}

	var requests []api.MentoringRequest
	if err := c.request(ctx, http.MethodGet, "/api/mentoring/requests", query, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetMentoringRequest fetches one mentoring request.
func (c *Client) GetMentoringRequest(ctx context.Context, id string) (*api.MentoringRequest, error) {
	var req api.MentoringRequest
	if err := c.request(ctx, http.MethodGet, "/api/mentoring/requests/"+id, nil, nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateMentoringRequest opens a new mentoring request.
func (c *Client) CreateMentoringRequest(ctx context.Context, req api.CreateMentoringRequest) (*api.MentoringRequest, error) {
	if err := validation.ValidateCreateMentoring(req); err != nil {
		return nil, err
	}
	var created api.MentoringRequest
	if err := c.request(ctx, http.MethodPost, "/api/mentoring/requests", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AssignMentor assigns a mentor to a pending request.
func (c *Client) AssignMentor(ctx context.Context, id, mentorID string) (*api.MentoringRequest, error) {
	var updated api.MentoringRequest
	body := api.AssignMentorRequest{MentorID: mentorID}
	if err := c.request(ctx, http.MethodPost, "/api/mentoring/requests/"+id+"/assign", nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteMentoringRequest marks a request as completed.
func (c *Client) CompleteMentoringRequest(ctx context.Context, id string) (*api.MentoringRequest, error) {
	var updated api.MentoringRequest
	if err := c.request(ctx, http.MethodPost, "/api/mentoring/requests/"+id+"/complete", nil, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
