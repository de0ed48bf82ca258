package t4g

// LightningNodeInfo describes the backend's Lightning node.
type LightningNodeInfo struct {
	IdentityPubkey string `json:"identity_pubkey"`
	Alias          string `json:"alias"`
	NumChannels    int    `json:"num_channels"`
	SyncedToChain  bool   `json:"synced_to_chain"`
}

// CreateInvoiceRequest is the body for POST /api/lightning/invoice.
type CreateInvoiceRequest struct {
	AmountMsat    int64  `json:"amount_msat"`
	Description   string `json:"description"`
	ExpirySeconds int    `json:"expiry_seconds,omitempty"`
}

// LightningInvoice is a BOLT11 invoice issued by the backend.
type LightningInvoice struct {
	PaymentRequest string `json:"payment_request"`
	PaymentHash    string `json:"payment_hash"`
	AmountMsat     int64  `json:"amount_msat"`
	Description    string `json:"description"`
	Expiry         int64  `json:"expiry"`
}

// PayInvoiceRequest is the body for POST /api/lightning/payment.
type PayInvoiceRequest struct {
	PaymentRequest string `json:"payment_request"`
}

// PaymentResponse is returned by POST /api/lightning/payment.
type PaymentResponse struct {
	PaymentHash     string `json:"payment_hash"`
	PaymentPreimage string `json:"payment_preimage,omitempty"`
	AmountMsat      int64  `json:"amount_msat"`
	Status          string `json:"status"`
}

// PaymentStatus is returned by GET /api/lightning/payment/{hash}/status.
type PaymentStatus struct {
	PaymentHash string `json:"payment_hash"`
	Status      string `json:"status"` // PENDING | SUCCEEDED | FAILED | UNKNOWN
}
