package t4g

// RGBProof is an on-chain mentoring completion proof.
type RGBProof struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	MentorID   string `json:"mentor_id"`
	MenteeID   string `json:"mentee_id"`
	RequestID  string `json:"request_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Timestamp  int64  `json:"timestamp"`
	Signature  string `json:"signature"`
}

// ListProofsParams filters GET /api/proofs.
type ListProofsParams struct {
	ContractID string
}

// CreateProofRequest is the body for POST /api/proofs.
type CreateProofRequest struct {
	RequestID string `json:"request_id"`
	MentorID  string `json:"mentor_id"`
	MenteeID  string `json:"mentee_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// CreateProofResponse is returned by POST /api/proofs.
type CreateProofResponse struct {
	Proof      RGBProof `json:"proof"`
	ContractID string   `json:"contract_id"`
	Signature  string   `json:"signature"`
}

// VerifyProofResponse is returned by GET /api/proofs/{id}/verify.
type VerifyProofResponse struct {
	Valid bool      `json:"valid"`
	Proof *RGBProof `json:"proof,omitempty"`
}

// TransferProofRequest is the body for POST /api/proofs/{id}/transfer.
type TransferProofRequest struct {
	FromOutpoint string `json:"from_outpoint"`
	ToOutpoint   string `json:"to_outpoint"`
	Amount       int64  `json:"amount"`
}

// TransferProofResponse is returned by POST /api/proofs/{id}/transfer.
type TransferProofResponse struct {
	TransferID string `json:"transfer_id"`
	Status     string `json:"status"`
}

// ProofTransfer is one historical transfer of a proof.
type ProofTransfer struct {
	ID          string `json:"id"`
	ProofID     string `json:"proof_id"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Amount      int64  `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
	TxID        string `json:"txid"`
}
