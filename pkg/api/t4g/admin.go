package t4g

// ListAdminWalletsParams filters GET /api/admin/wallets.
type ListAdminWalletsParams struct {
	Limit      int
	Offset     int
	MinBalance int64
}

// AdminWalletInfo is one row of the admin wallet overview.
type AdminWalletInfo struct {
	UserID             string `json:"user_id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	LightningAddress   string `json:"lightning_address"`
	BalanceMsat        int64  `json:"balance_msat"`
	PendingBalanceMsat int64  `json:"pending_balance_msat"`
	TotalReceivedMsat  int64  `json:"total_received_msat"`
	TotalSentMsat      int64  `json:"total_sent_msat"`
	NumTransactions    int    `json:"num_transactions"`
	LastTransactionAt  string `json:"last_transaction_at,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// AdminStats is returned by GET /api/admin/stats.
type AdminStats struct {
	TotalUsers               int    `json:"total_users"`
	TotalMentoringRequests   int    `json:"total_mentoring_requests"`
	TotalRGBProofs           int    `json:"total_rgb_proofs"`
	TotalLightningVolumeMsat int64  `json:"total_lightning_volume_msat"`
	ActiveUsersLast30Days    int    `json:"active_users_last_30_days"`
	Timestamp                string `json:"timestamp"`
}
