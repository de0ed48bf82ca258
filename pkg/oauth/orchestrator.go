// Package oauth drives the authorization_code login flows. The client
// never holds provider secrets; it builds the authorize URL, guards the
// CSRF state round-trip, and hands the returned code to the app backend
// for the actual token exchange.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
	"github.com/Feustey/T4G-sub000/pkg/config"
	"github.com/Feustey/T4G-sub000/pkg/logging"
	"github.com/Feustey/T4G-sub000/pkg/session"
)

// Status is the callback latch state. A flow that failed may be retried;
// a completed flow stays completed so duplicate callback deliveries
// cannot log in twice.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotConfigured means the provider has no client id or authorize
	// URL. It is returned before any navigation happens.
	ErrNotConfigured = errors.New("oauth provider not configured")
	// ErrLoginInProgress means a callback is already being processed.
	ErrLoginInProgress = errors.New("login already in progress")
	// ErrLoginCompleted means this flow already finished; the duplicate
	// callback is dropped.
	ErrLoginCompleted = errors.New("login already completed")
	// ErrStateMismatch is the production response to a CSRF state
	// mismatch.
	ErrStateMismatch = errors.New("possible CSRF attack: oauth state mismatch")
)

// Orchestrator runs OAuth logins end to end. One orchestrator handles one
// interactive login at a time.
type Orchestrator struct {
	cfg      config.Config
	states   *auth.SessionStore
	client   *t4g.Client
	sessions *session.Manager
	logger   logging.Logger

	mu      sync.Mutex
	status  Status
	lastErr error
}

// NewOrchestrator creates an orchestrator. client must be bound to the
// app origin (AppBaseURL), which hosts the code exchange endpoints.
func NewOrchestrator(cfg config.Config, states *auth.SessionStore, client *t4g.Client, sessions *session.Manager, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		states:   states,
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

func stateKey(provider string) string {
	return provider + "_oauth_state"
}

// newState returns a fresh CSRF state nonce.
func newState() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StartLogin prepares a login with the named provider and returns the
// authorize URL to open. Misconfigured providers fail here, before the
// user is sent anywhere.
func (o *Orchestrator) StartLogin(provider string) (string, error) {
	p, ok := o.cfg.Provider(provider)
	if !ok || !p.Configured() {
		return "", fmt.Errorf("%w: %s", ErrNotConfigured, provider)
	}

	state := newState()
	o.states.Set(stateKey(provider), state)

	o.mu.Lock()
	o.status = StatusIdle
	o.lastErr = nil
	o.mu.Unlock()

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", p.RedirectURI)
	q.Set("scope", strings.Join(p.Scopes, " "))
	q.Set("state", state)
	return p.AuthURL + "?" + q.Encode(), nil
}

// HandleCallback consumes the provider redirect: it validates the CSRF
// state, exchanges the code for a profile via the app backend, and logs
// the session in. The stored state is only discarded on success, so a
// failed exchange can be retried against the same state.
func (o *Orchestrator) HandleCallback(ctx context.Context, provider, code, state string) (*session.User, error) {
	o.mu.Lock()
	switch o.status {
	case StatusPending:
		o.mu.Unlock()
		return nil, ErrLoginInProgress
	case StatusCompleted:
		o.mu.Unlock()
		return nil, ErrLoginCompleted
	}
	o.status = StatusPending
	o.mu.Unlock()

	user, err := o.processCallback(ctx, provider, code, state)

	o.mu.Lock()
	if err != nil {
		o.status = StatusFailed
		o.lastErr = err
	} else {
		o.status = StatusCompleted
		o.lastErr = nil
	}
	o.mu.Unlock()
	return user, err
}

func (o *Orchestrator) processCallback(ctx context.Context, provider, code, state string) (*session.User, error) {
	p, ok := o.cfg.Provider(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, provider)
	}

	expected, _ := o.states.Get(stateKey(provider))
	if expected == "" || expected != state {
		if o.cfg.IsProduction() {
			return nil, ErrStateMismatch
		}
		if o.logger != nil {
			o.logger.WithFields(logging.Fields{
				"provider": provider,
			}).Warn("OAuth state mismatch, continuing outside production")
		}
	}

	profile, err := o.client.ExchangeOAuthCode(ctx, provider, api.OAuthExchangeRequest{
		Code:        code,
		State:       state,
		RedirectURI: p.RedirectURI,
	})
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	user, err := o.sessions.LoginWithProfile(ctx, provider, profile)
	if err != nil {
		return nil, err
	}

	o.states.Delete(stateKey(provider))
	return user, nil
}

// Status returns the latch state and the last failure, if any.
func (o *Orchestrator) Status() (Status, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status, o.lastErr
}

// Reset returns a failed or completed orchestrator to idle so a new
// login can start.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.status = StatusIdle
	o.lastErr = nil
	o.mu.Unlock()
}
