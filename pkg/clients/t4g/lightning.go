package t4g

import (
	"context"
	"net/http"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

// GetNodeInfo returns the backend Lightning node's identity and sync state.
func (c *Client) GetNodeInfo(ctx context.Context) (*api.LightningNodeInfo, error) {
	var info api.LightningNodeInfo
	if err := c.request(ctx, http.MethodGet, "/api/lightning/info", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateInvoice issues a BOLT11 invoice.
func (c *Client) CreateInvoice(ctx context.Context, req api.CreateInvoiceRequest) (*api.LightningInvoice, error) {
	var invoice api.LightningInvoice
	if err := c.request(ctx, http.MethodPost, "/api/lightning/invoice", nil, req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// PayInvoice pays a BOLT11 invoice through the backend node.
func (c *Client) PayInvoice(ctx context.Context, paymentRequest string) (*api.PaymentResponse, error) {
	var resp api.PaymentResponse
	body := api.PayInvoiceRequest{PaymentRequest: paymentRequest}
	if err := c.request(ctx, http.MethodPost, "/api/lightning/payment", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPaymentStatus polls the status of an outgoing payment.
func (c *Client) GetPaymentStatus(ctx context.Context, paymentHash string) (*api.PaymentStatus, error) {
	var status api.PaymentStatus
	if err := c.request(ctx, http.MethodGet, "/api/lightning/payment/"+paymentHash+"/status", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
