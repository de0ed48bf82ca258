package t4g

// LoginRequest is the body for POST /api/auth/login. Password login sends
// email+password; provider logins send the provider name plus either a
// bridge token or the normalized profile from the OAuth exchange.
type LoginRequest struct {
	Email            string           `json:"email"`
	Password         string           `json:"password,omitempty"`
	Provider         string           `json:"provider,omitempty"`
	Token            string           `json:"token,omitempty"`
	ProviderUserData *ProviderProfile `json:"provider_user_data,omitempty"`
}

// ProviderProfile is the normalized identity an OAuth/magic-link exchange
// yields (OIDC-style field names).
type ProviderProfile struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Subject    string `json:"sub,omitempty"`
	Picture    string `json:"picture,omitempty"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RefreshTokenResponse is returned by POST /api/auth/refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// MagicLinkSendRequest is the body for POST /api/auth/magic-link/send.
type MagicLinkSendRequest struct {
	Email string `json:"email"`
}

// MagicLinkVerifyRequest is the body for POST /api/auth/magic-link/verify.
// The response is a ProviderProfile, consumed like an OAuth callback.
type MagicLinkVerifyRequest struct {
	Token string `json:"token"`
}

// OAuthExchangeRequest is the body for POST /api/auth/callback/{provider}.
type OAuthExchangeRequest struct {
	Code        string `json:"code"`
	State       string `json:"state,omitempty"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}
