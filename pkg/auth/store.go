package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Feustey/T4G-sub000/pkg/logging"
)

const tokenFileName = "token"

// CredentialStore holds the bearer token. It keeps an in-memory mirror for
// the lifetime of the process and persists the token to a file under the
// state directory so it survives restarts. If the directory is not writable
// the in-memory value still works for the current run; persistence failures
// are not reported, matching the private-browsing behavior of the web app.
//
// Only the API client (login success, 401) and the session manager (logout)
// may write; everything else treats the store as read-only.
type CredentialStore struct {
	mu     sync.RWMutex
	token  string
	loaded bool
	path   string
	logger logging.Logger
}

// NewCredentialStore creates a store backed by dir. An empty dir defaults
// to ~/.t4g. The directory is created lazily on first write.
func NewCredentialStore(dir string, logger logging.Logger) *CredentialStore {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".t4g")
		}
	}
	s := &CredentialStore{logger: logger}
	if dir != "" {
		s.path = filepath.Join(dir, tokenFileName)
	}
	return s
}

// SetToken stores the token in memory and best-effort persists it.
func (s *CredentialStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.loaded = true
	s.mu.Unlock()

	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.debugf("credential dir unavailable: %v", err)
		return
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		s.debugf("credential persist failed: %v", err)
	}
}

// ClearToken drops the token from memory and removes the persisted copy.
func (s *CredentialStore) ClearToken() {
	s.mu.Lock()
	s.token = ""
	s.loaded = true
	s.mu.Unlock()

	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			s.debugf("credential remove failed: %v", err)
		}
	}
}

// Token returns the current token. The persisted copy is read once, the
// first time it is needed in this process.
func (s *CredentialStore) Token() (string, bool) {
	s.mu.RLock()
	if s.loaded {
		tok := s.token
		s.mu.RUnlock()
		return tok, tok != ""
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loaded = true
		if s.path != "" {
			if b, err := os.ReadFile(s.path); err == nil {
				s.token = strings.TrimSpace(string(b))
			}
		}
	}
	return s.token, s.token != ""
}

func (s *CredentialStore) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}
