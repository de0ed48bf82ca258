package t4g

// User roles known to the backend.
const (
	RoleStudent = "STUDENT"
	RoleAlumni  = "ALUMNI"
	RoleMentor  = "MENTOR"
	RoleAdmin   = "ADMIN"
)

// User is the backend representation of a platform member.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Role             string `json:"role"`
	Program          string `json:"program,omitempty"`
	GraduatedYear    int    `json:"graduated_year,omitempty"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	Bio              string `json:"bio,omitempty"`
	LightningAddress string `json:"lightning_address,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// ListUsersParams filters GET /api/users.
type ListUsersParams struct {
	Role   string
	Limit  int
	Offset int
}

// CreateUserRequest is the body for POST /api/users.
type CreateUserRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	Program       string `json:"program,omitempty"`
	GraduatedYear int    `json:"graduated_year,omitempty"`
	Password      string `json:"password,omitempty"`
}

// UpdateUserRequest carries the mutable user fields for PUT /api/users/{id}.
// Nil pointers are omitted so partial updates stay partial.
type UpdateUserRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Role             *string `json:"role,omitempty"`
	Program          *string `json:"program,omitempty"`
	GraduatedYear    *int    `json:"graduated_year,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	LightningAddress *string `json:"lightning_address,omitempty"`
}

// UserWallet is the per-user Lightning wallet view.
type UserWallet struct {
	UserID             string              `json:"user_id"`
	LightningAddress   string              `json:"lightning_address"`
	BalanceMsat        int64               `json:"balance_msat"`
	PendingBalanceMsat int64               `json:"pending_balance_msat"`
	TotalReceivedMsat  int64               `json:"total_received_msat"`
	TotalSentMsat      int64               `json:"total_sent_msat"`
	RecentTransactions []WalletTransaction `json:"recent_transactions"`
}

// WalletTransaction is a single wallet ledger entry.
type WalletTransaction struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // PAYMENT | INVOICE | TRANSFER
	AmountMsat  int64  `json:"amount_msat"`
	Status      string `json:"status"` // PENDING | COMPLETED | FAILED
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}
