package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Feustey/T4G-sub000/pkg/clients"
	"github.com/Feustey/T4G-sub000/pkg/logging"
	"github.com/Feustey/T4G-sub000/pkg/session"
)

// daznoTokenKey is where the partner app parks its session token for us.
const daznoTokenKey = "dazno_token"

var (
	// ErrNoBridgeSession means no partner token was handed over.
	ErrNoBridgeSession = errors.New("no dazno session token present")
	// ErrBridgeSessionInvalid means the partner rejected the token. The
	// token has been discarded when this is returned.
	ErrBridgeSessionInvalid = errors.New("dazno session token invalid")
)

type daznoVerifyRequest struct {
	Token string `json:"token"`
}

type daznoVerifyResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email"`
}

// SetBridgeToken stores a partner session token for a later
// LoginWithDazno call.
func (o *Orchestrator) SetBridgeToken(token string) {
	o.states.Set(daznoTokenKey, token)
}

// HasBridgeSession reports whether a partner token is waiting.
func (o *Orchestrator) HasBridgeSession() bool {
	_, ok := o.states.Get(daznoTokenKey)
	return ok
}

// LoginWithDazno attempts a single-sign-on through the Dazno bridge: the
// token the partner app handed over is verified against the partner's
// endpoint, then used as the credential for a provider login. An invalid
// token is removed so the next attempt starts clean.
func (o *Orchestrator) LoginWithDazno(ctx context.Context) (*session.User, error) {
	token, ok := o.states.Get(daznoTokenKey)
	if !ok || token == "" {
		return nil, ErrNoBridgeSession
	}

	email, err := o.verifyDaznoToken(ctx, token)
	if err != nil {
		o.states.Delete(daznoTokenKey)
		if o.logger != nil {
			o.logger.WithFields(logging.Fields{"error": err.Error()}).Debug("Dazno bridge verification failed")
		}
		return nil, err
	}

	return o.sessions.LoginWithBridgeToken(ctx, "dazno", email, token)
}

func (o *Orchestrator) verifyDaznoToken(ctx context.Context, token string) (string, error) {
	payload, err := json.Marshal(daznoVerifyRequest{Token: token})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.DaznoVerifyURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: 10 * time.Second, Transport: clients.DefaultTransport()}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dazno verification unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return "", ErrBridgeSessionInvalid
	}

	var verdict daznoVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return "", fmt.Errorf("dazno verification response unreadable: %w", err)
	}
	if !verdict.Valid {
		return "", ErrBridgeSessionInvalid
	}
	return verdict.Email, nil
}
