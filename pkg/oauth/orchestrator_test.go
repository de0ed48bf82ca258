package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
	"github.com/Feustey/T4G-sub000/pkg/config"
	"github.com/Feustey/T4G-sub000/pkg/session"
)

// testBackend serves both the code exchange and the platform login.
type testBackend struct {
	exchanges        int32
	logins           int32
	failNextExchange bool
}

func (b *testBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/callback/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.exchanges, 1)
		if b.failNextExchange {
			b.failNextExchange = false
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var req api.OAuthExchangeRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		json.NewEncoder(w).Encode(api.ProviderProfile{ //nolint:errcheck
			Email:      "dev@t4g.io",
			GivenName:  "Dev",
			FamilyName: "Eloper",
			Subject:    "gh-123",
		})
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.logins, 1)
		var req api.LoginRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		json.NewEncoder(w).Encode(api.LoginResponse{ //nolint:errcheck
			Token: "session-token",
			User: api.User{
				ID:        "u-9",
				Email:     req.Email,
				FirstName: "Dev",
				LastName:  "Eloper",
				Role:      "ALUMNI",
			},
		})
	})
	return mux
}

func newTestOrchestrator(t *testing.T, backend *testBackend, environment string) (*Orchestrator, *auth.SessionStore, *auth.CredentialStore) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	cfg := config.Config{
		APIBaseURL:  server.URL,
		AppBaseURL:  server.URL,
		Environment: environment,
		Providers: map[string]config.OAuthProvider{
			"github": {
				ClientID:    "client-123",
				AuthURL:     "https://github.test/login/oauth/authorize",
				RedirectURI: "https://app.t4g.test/auth/callback/github",
				Scopes:      []string{"read:user", "user:email"},
			},
			"linkedin": {},
		},
	}

	store := auth.NewCredentialStore(filepath.Join(t.TempDir(), "creds"), nil)
	client := t4g.NewClient(t4g.Config{BaseURL: server.URL, Store: store})
	sessions := session.NewManager(client, store, nil)
	states := auth.NewSessionStore()
	return NewOrchestrator(cfg, states, client, sessions, nil), states, store
}

func TestStartLoginRejectsUnconfiguredProvider(t *testing.T) {
	o, states, _ := newTestOrchestrator(t, &testBackend{}, config.EnvDevelopment)

	for _, provider := range []string{"linkedin", "unknown"} {
		if _, err := o.StartLogin(provider); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: expected ErrNotConfigured, got %v", provider, err)
		}
		if _, ok := states.Get(provider + "_oauth_state"); ok {
			t.Errorf("%s: no state may be stored for a failed start", provider)
		}
	}
}

func TestStartLoginBuildsAuthorizeURL(t *testing.T) {
	o, states, _ := newTestOrchestrator(t, &testBackend{}, config.EnvDevelopment)

	rawURL, err := o.StartLogin("github")
	if err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("bad authorize URL: %v", err)
	}
	q := u.Query()
	if q.Get("client_id") != "client-123" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if q.Get("scope") != "read:user user:email" {
		t.Errorf("scope = %q", q.Get("scope"))
	}

	stored, ok := states.Get("github_oauth_state")
	if !ok || stored == "" {
		t.Fatal("state nonce must be stored")
	}
	if q.Get("state") != stored {
		t.Errorf("URL state %q != stored state %q", q.Get("state"), stored)
	}
	if !regexp.MustCompile(`^[a-z0-9]+$`).MatchString(stored) {
		t.Errorf("state %q should be lowercase alphanumeric", stored)
	}
}

func TestStartLoginRotatesState(t *testing.T) {
	o, states, _ := newTestOrchestrator(t, &testBackend{}, config.EnvDevelopment)

	o.StartLogin("github") //nolint:errcheck
	first, _ := states.Get("github_oauth_state")
	o.StartLogin("github") //nolint:errcheck
	second, _ := states.Get("github_oauth_state")

	if first == second {
		t.Error("each login attempt must mint a fresh state nonce")
	}
}

func TestHandleCallbackSuccess(t *testing.T) {
	backend := &testBackend{}
	o, states, store := newTestOrchestrator(t, backend, config.EnvDevelopment)

	o.StartLogin("github") //nolint:errcheck
	state, _ := states.Get("github_oauth_state")

	user, err := o.HandleCallback(context.Background(), "github", "code-abc", state)
	if err != nil {
		t.Fatalf("callback failed: %v", err)
	}
	if user.Email != "dev@t4g.io" || user.Firstname != "Dev" {
		t.Errorf("user = %+v", user)
	}
	if tok, _ := store.Token(); tok != "session-token" {
		t.Errorf("session token not stored, got %q", tok)
	}
	if _, ok := states.Get("github_oauth_state"); ok {
		t.Error("state must be discarded after a successful login")
	}
	if status, _ := o.Status(); status != StatusCompleted {
		t.Errorf("status = %s, want completed", status)
	}
}

func TestHandleCallbackDuplicateIsDropped(t *testing.T) {
	backend := &testBackend{}
	o, states, _ := newTestOrchestrator(t, backend, config.EnvDevelopment)

	o.StartLogin("github") //nolint:errcheck
	state, _ := states.Get("github_oauth_state")
	if _, err := o.HandleCallback(context.Background(), "github", "code-abc", state); err != nil {
		t.Fatalf("callback failed: %v", err)
	}
	before := atomic.LoadInt32(&backend.exchanges)

	if _, err := o.HandleCallback(context.Background(), "github", "code-abc", state); !errors.Is(err, ErrLoginCompleted) {
		t.Errorf("duplicate callback: expected ErrLoginCompleted, got %v", err)
	}
	if got := atomic.LoadInt32(&backend.exchanges); got != before {
		t.Errorf("duplicate callback must not reach the exchange, calls went %d -> %d", before, got)
	}
}

func TestHandleCallbackStateMismatchProduction(t *testing.T) {
	backend := &testBackend{}
	o, _, _ := newTestOrchestrator(t, backend, config.EnvProduction)

	o.StartLogin("github") //nolint:errcheck

	_, err := o.HandleCallback(context.Background(), "github", "code-abc", "forged-state")
	if !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "CSRF") {
		t.Errorf("mismatch error should name CSRF, got %q", err)
	}
	if got := atomic.LoadInt32(&backend.exchanges); got != 0 {
		t.Error("mismatch must fail before the code exchange")
	}
	if status, _ := o.Status(); status != StatusFailed {
		t.Errorf("status = %s, want failed", status)
	}
}

func TestHandleCallbackStateMismatchDevelopment(t *testing.T) {
	backend := &testBackend{}
	o, _, _ := newTestOrchestrator(t, backend, config.EnvDevelopment)

	o.StartLogin("github") //nolint:errcheck

	user, err := o.HandleCallback(context.Background(), "github", "code-abc", "forged-state")
	if err != nil {
		t.Fatalf("outside production a mismatch should proceed, got %v", err)
	}
	if user == nil {
		t.Fatal("expected a logged-in user")
	}
}

func TestHandleCallbackFailureIsRetryable(t *testing.T) {
	backend := &testBackend{failNextExchange: true}
	o, states, _ := newTestOrchestrator(t, backend, config.EnvDevelopment)

	o.StartLogin("github") //nolint:errcheck
	state, _ := states.Get("github_oauth_state")

	if _, err := o.HandleCallback(context.Background(), "github", "code-abc", state); err == nil {
		t.Fatal("expected the first exchange to fail")
	}
	if status, _ := o.Status(); status != StatusFailed {
		t.Fatalf("status = %s, want failed", status)
	}
	if _, ok := states.Get("github_oauth_state"); !ok {
		t.Fatal("state must survive a failed exchange so the login can retry")
	}

	user, err := o.HandleCallback(context.Background(), "github", "code-abc", state)
	if err != nil {
		t.Fatalf("retry after failure should work, got %v", err)
	}
	if user == nil {
		t.Fatal("expected a logged-in user on retry")
	}
}
