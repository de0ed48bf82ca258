package t4g

import (
	"context"
	"net/http"
	"net/url"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/validation"
)

// ListProofs returns mentoring completion proofs, optionally filtered by
// RGB contract.
func (c *Client) ListProofs(ctx context.Context, params api.ListProofsParams) ([]api.RGBProof, error) {
	query := url.Values{}
	if params.ContractID != "" {
		query.Set("contract_id", params.ContractID)
	}

	var proofs []api.RGBProof
	if err := c.request(ctx, http.MethodGet, "/api/proofs", query, nil, &proofs); err != nil {
		return nil, err
	}
	return proofs, nil
}

// GetProof fetches a single proof.
func (c *Client) GetProof(ctx context.Context, id string) (*api.RGBProof, error) {
	var proof api.RGBProof
	if err := c.request(ctx, http.MethodGet, "/api/proofs/"+id, nil, nil, &proof); err != nil {
		return nil, err
	}
	return &proof, nil
}

// CreateProof records a mentoring completion proof on the RGB contract.
func (c *Client) CreateProof(ctx context.Context, req api.CreateProofRequest) (*api.CreateProofResponse, error) {
	if err := validation.ValidateCreateProof(req); err != nil {
		return nil, err
	}
	var resp api.CreateProofResponse
	if err := c.request(ctx, http.MethodPost, "/api/proofs", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyProof checks a proof's signature and contract state.
func (c *Client) VerifyProof(ctx context.Context, id string) (*api.VerifyProofResponse, error) {
	var resp api.VerifyProofResponse
	if err := c.request(ctx, http.MethodGet, "/api/proofs/"+id+"/verify", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TransferProof moves a proof asset between outpoints.
func (c *Client) TransferProof(ctx context.Context, id string, req api.TransferProofRequest) (*api.TransferProofResponse, error) {
	var resp api.TransferProofResponse
	if err := c.request(ctx, http.MethodPost, "/api/proofs/"+id+"/transfer", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProofHistory returns the transfer history of a proof.
func (c *Client) GetProofHistory(ctx context.Context, id string) ([]api.ProofTransfer, error) {
	var history []api.ProofTransfer
	if err := c.request(ctx, http.MethodGet, "/api/proofs/"+id+"/history", nil, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
