package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Feustey/T4G-sub000/pkg/auth"
	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
)

func makeToken(t *testing.T, userID, email, role string, expiresAt time.Time) string {
	t.Helper()
	claims := auth.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}
	return token
}

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *auth.CredentialStore) {
	t.Helper()
	store := auth.NewCredentialStore(filepath.Join(t.TempDir(), "creds"), nil)
	baseURL := "http://127.0.0.1:1"
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		baseURL = server.URL
	}
	client := t4g.NewClient(t4g.Config{BaseURL: baseURL, Store: store})
	return NewManager(client, store, nil), store
}

func TestInitRestoresSessionFromToken(t *testing.T) {
	m, store := newTestManager(t, nil)
	store.SetToken(makeToken(t, "u-7", "mentor@t4g.io", "MENTOR", time.Now().Add(time.Hour)))

	if !m.Loading() {
		t.Error("manager should report loading before Init finishes")
	}
	m.Init(context.Background())

	if m.Loading() {
		t.Error("manager should not report loading after Init")
	}
	user := m.CurrentUser()
	if user == nil {
		t.Fatal("expected a restored user")
	}
	if user.ID != "u-7" || user.Email != "mentor@t4g.io" || user.Role != "MENTOR" {
		t.Errorf("restored user = %+v", user)
	}
	if !m.IsAuthenticated() {
		t.Error("restored session should be authenticated")
	}
}

func TestInitDiscardsExpiredToken(t *testing.T) {
	m, store := newTestManager(t, nil)
	store.SetToken(makeToken(t, "u-7", "old@t4g.io", "STUDENT", time.Now().Add(-time.Hour)))

	m.Init(context.Background())

	if m.CurrentUser() != nil {
		t.Error("expired token must not restore a user")
	}
	if _, ok := store.Token(); ok {
		t.Error("expired token must be cleared from the store")
	}
}

func TestInitDiscardsGarbageToken(t *testing.T) {
	m, store := newTestManager(t, nil)
	store.SetToken("not-a-jwt")

	m.Init(context.Background())

	if m.CurrentUser() != nil {
		t.Error("garbage token must not restore a user")
	}
	if _, ok := store.Token(); ok {
		t.Error("garbage token must be cleared from the store")
	}
}

func TestInitWithoutTokenLeavesLoggedOut(t *testing.T) {
	m, _ := newTestManager(t, nil)
	m.Init(context.Background())
	if m.IsAuthenticated() {
		t.Error("no token means no session")
	}
	if m.Loading() {
		t.Error("Init must clear the loading flag even without a token")
	}
}

func TestLoginMapsUserFields(t *testing.T) {
	m, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u-1","email":"a@b.c","first_name":"Ada","last_name":"Lovelace","role":"ALUMNI","lightning_address":"ada@ln.t4g.io"}}`)) //nolint:errcheck
	}))

	user, err := m.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Firstname != "Ada" || user.Lastname != "Lovelace" {
		t.Errorf("name mapping wrong: %+v", user)
	}
	if user.LightningAddress != "ada@ln.t4g.io" {
		t.Errorf("lightning address not mapped: %+v", user)
	}
	if tok, _ := store.Token(); tok != "tok-1" {
		t.Errorf("token not persisted, store has %q", tok)
	}
	if !m.IsAuthenticated() {
		t.Error("fresh login should be authenticated")
	}
}

func TestLogoutTearsDownEverything(t *testing.T) {
	m, store := newTestManager(t, nil)
	store.SetToken(makeToken(t, "u-1", "a@b.c", "STUDENT", time.Now().Add(time.Hour)))
	m.Init(context.Background())

	m.Logout()

	if m.CurrentUser() != nil {
		t.Error("logout must drop the user")
	}
	if _, ok := store.Token(); ok {
		t.Error("logout must clear the stored token")
	}
	if m.IsAuthenticated() {
		t.Error("logged-out session must not be authenticated")
	}
}

func TestExternalTokenLossDeauthenticates(t *testing.T) {
	// A 401 anywhere clears the credential store; the session must
	// observe that without its own Logout being called.
	m, store := newTestManager(t, nil)
	store.SetToken(makeToken(t, "u-1", "a@b.c", "STUDENT", time.Now().Add(time.Hour)))
	m.Init(context.Background())

	store.ClearToken()

	if m.IsAuthenticated() {
		t.Error("a session without a token must not count as authenticated")
	}
	if m.CurrentUser() == nil {
		t.Error("the provisional user may remain for display until the next refresh")
	}
}

func TestRefreshRejectionLogsOut(t *testing.T) {
	m, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	store.SetToken(makeToken(t, "u-1", "a@b.c", "STUDENT", time.Now().Add(time.Hour)))
	m.Init(context.Background())

	err := m.RefreshSession(context.Background())
	if err == nil {
		t.Fatal("expected refresh to fail")
	}
	if m.CurrentUser() != nil || m.IsAuthenticated() {
		t.Error("rejected refresh must tear the session down")
	}
}
