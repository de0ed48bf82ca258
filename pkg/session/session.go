// Package session owns the authenticated-user lifecycle: restoring a
// session from a persisted token, logging in through any supported
// route, and tearing everything down atomically on logout.
package session

import (
	"context"
	"errors"
	"sync"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
	"github.com/Feustey/T4G-sub000/pkg/logging"
)

// User is the session's view of the logged-in member.
type User struct {
	ID               string
	Email            string
	Firstname        string
	Lastname         string
	Role             string
	LightningAddress string
}

// Manager tracks who is logged in. A Manager is safe for concurrent use.
type Manager struct {
	client *t4g.Client
	store  *auth.CredentialStore
	logger logging.Logger

	mu      sync.Mutex
	user    *User
	loading bool
}

// NewManager creates a session manager bound to the given client and
// credential store. Call Init to restore any persisted session.
func NewManager(client *t4g.Client, store *auth.CredentialStore, logger logging.Logger) *Manager {
	return &Manager{client: client, store: store, logger: logger, loading: true}
}

// Init restores the session from the persisted token, if any. The token
// is decoded without signature verification: the backend re-checks the
// signature on every request, so a forged token buys nothing beyond a
// briefly wrong display name. Invalid or expired tokens are discarded.
func (m *Manager) Init(ctx context.Context) {
	defer m.setLoading(false)

	token, ok := m.store.Token()
	if !ok {
		return
	}

	claims, err := auth.DecodeUnverified(token)
	if err != nil {
		if m.logger != nil {
			m.logger.WithFields(logging.Fields{"error": err.Error()}).Debug("Discarding stored token")
		}
		m.client.ClearToken()
		return
	}

	m.setUser(&User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	})
}

// Login authenticates with email and password.
func (m *Manager) Login(ctx context.Context, email, password string) (*User, error) {
	return m.doLogin(ctx, api.LoginRequest{Email: email, Password: password})
}

// LoginWithProfile completes a provider login (OAuth callback or
// magic-link verification) using the normalized profile the exchange
// returned.
func (m *Manager) LoginWithProfile(ctx context.Context, provider string, profile *api.ProviderProfile) (*User, error) {
	return m.doLogin(ctx, api.LoginRequest{
		Email:            profile.Email,
		Provider:         provider,
		ProviderUserData: profile,
	})
}

// LoginWithBridgeToken completes a cross-app login using a token minted
// by a partner service (the Dazno bridge).
func (m *Manager) LoginWithBridgeToken(ctx context.Context, provider, email, token string) (*User, error) {
	return m.doLogin(ctx, api.LoginRequest{
		Email:    email,
		Provider: provider,
		Token:    token,
	})
}

func (m *Manager) doLogin(ctx context.Context, req api.LoginRequest) (*User, error) {
	resp, err := m.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	user := fromAPIUser(resp.User)
	m.setUser(&user)
	return &user, nil
}

// Logout clears the user and the stored credential as one operation, so
// no observer can see a user without a token or the reverse.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.user = nil
	m.client.ClearToken()
	m.mu.Unlock()
}

// RefreshSession swaps the current token for a fresh one. If the backend
// rejects the refresh with 401 the session is torn down.
func (m *Manager) RefreshSession(ctx context.Context) error {
	_, err := m.client.RefreshToken(ctx)
	if errors.Is(err, t4g.ErrNotAuthenticated) {
		m.Logout()
	}
	return err
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (m *Manager) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is set and a token is present.
// Both conditions matter: a 401 clears the token behind the session's
// back, and this must flip to false the moment that happens.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	user := m.user
	m.mu.Unlock()
	if user == nil {
		return false
	}
	_, ok := m.client.Token()
	return ok
}

// Loading reports whether session restoration is still in progress.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setUser(u *User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func fromAPIUser(u api.User) User {
	return User{
		ID:               u.ID,
		Email:            u.Email,
		Firstname:        u.FirstName,
		Lastname:         u.LastName,
		Role:             u.Role,
		LightningAddress: u.LightningAddress,
	}
}
