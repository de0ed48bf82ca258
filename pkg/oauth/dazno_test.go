package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
	"github.com/Feustey/T4G-sub000/pkg/config"
	"github.com/Feustey/T4G-sub000/pkg/session"
)

func TestLoginWithDaznoNoToken(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &testBackend{}, "development")

	if _, err := o.LoginWithDazno(context.Background()); !errors.Is(err, ErrNoBridgeSession) {
		t.Errorf("expected ErrNoBridgeSession, got %v", err)
	}
}

func TestLoginWithDaznoInvalidTokenIsDiscarded(t *testing.T) {
	verify := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(daznoVerifyResponse{Valid: false}) //nolint:errcheck
	}))
	defer verify.Close()

	o, _, _ := newTestOrchestrator(t, &testBackend{}, "development")
	o.cfg.DaznoVerifyURL = verify.URL
	o.SetBridgeToken("bad-token")

	if _, err := o.LoginWithDazno(context.Background()); !errors.Is(err, ErrBridgeSessionInvalid) {
		t.Fatalf("expected ErrBridgeSessionInvalid, got %v", err)
	}
	if o.HasBridgeSession() {
		t.Error("an invalid bridge token must be discarded")
	}
}

func TestLoginWithDaznoValidToken(t *testing.T) {
	var verified struct {
		Token string `json:"token"`
	}
	verify := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&verified)                                            //nolint:errcheck
		json.NewEncoder(w).Encode(daznoVerifyResponse{Valid: true, Email: "bridged@t4g.io"}) //nolint:errcheck
	}))
	defer verify.Close()

	backend := &testBackend{}
	o, _, store := newTestOrchestrator(t, backend, "development")
	o.cfg.DaznoVerifyURL = verify.URL
	o.SetBridgeToken("bridge-token")

	user, err := o.LoginWithDazno(context.Background())
	if err != nil {
		t.Fatalf("bridge login failed: %v", err)
	}
	if verified.Token != "bridge-token" {
		t.Errorf("verify endpoint received %q", verified.Token)
	}
	if user.Email != "bridged@t4g.io" {
		t.Errorf("user = %+v", user)
	}
	if tok, _ := store.Token(); tok != "session-token" {
		t.Errorf("session token not stored, got %q", tok)
	}
}

func TestCompleteMagicLink(t *testing.T) {
	mux := http.NewServeMux()
	var sentTo string
	mux.HandleFunc("/api/auth/magic-link/send", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		sentTo = req.Email
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/auth/magic-link/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"magic@t4g.io","given_name":"Mae","family_name":"Gique","sub":"ml-1"}`)) //nolint:errcheck
	})
	mux.Handle("/api/auth/login", (&testBackend{}).handler())

	server := httptest.NewServer(mux)
	defer server.Close()

	store := auth.NewCredentialStore(filepath.Join(t.TempDir(), "creds"), nil)
	client := t4g.NewClient(t4g.Config{BaseURL: server.URL, Store: store})
	sessions := session.NewManager(client, store, nil)
	cfg := config.Config{AppBaseURL: server.URL, Environment: config.EnvDevelopment}
	o := NewOrchestrator(cfg, auth.NewSessionStore(), client, sessions, nil)

	if err := o.SendMagicLink(context.Background(), "magic@t4g.io"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if sentTo != "magic@t4g.io" {
		t.Errorf("send reached backend with %q", sentTo)
	}

	user, err := o.CompleteMagicLink(context.Background(), "one-time-token")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if user.Email != "magic@t4g.io" {
		t.Errorf("user = %+v", user)
	}
}
