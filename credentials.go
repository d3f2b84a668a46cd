package sdk

import (
	"context"
	"strings"
	"sync"
)

// RefreshFunc obtains a replacement bearer token. Returning an empty token
// (with or without an error) means no new credential could be produced and
// the session is treated as unauthenticated.
type RefreshFunc func(ctx context.Context) (string, error)

// CredentialStore holds the process-wide bearer credential together with the
// refresh function and unauthorized handler registered by the composition
// root. Absence of either callback is a valid state. The zero value is ready
// to use.
type CredentialStore struct {
	mu           sync.RWMutex
	token        string
	refresh      RefreshFunc
	unauthorized func()
}

// SetToken replaces the current credential unconditionally. Last write wins.
func (s *CredentialStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = trimBearerPrefix(token)
}

// Token returns the current credential, or "" when none is set.
func (s *CredentialStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetRefreshFunc registers the operation used to obtain a replacement token
// after an authentication failure. Pass nil to unregister.
func (s *CredentialStore) SetRefreshFunc(fn RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = fn
}

// SetUnauthorizedFunc registers the callback invoked when a retry-eligible
// request exhausts its one retry without obtaining a new credential.
func (s *CredentialStore) SetUnauthorizedFunc(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unauthorized = fn
}

// Reset clears the credential and both callbacks. A subsequent request
// behaves as if the store were freshly initialized; calling Reset twice is a
// no-op.
func (s *CredentialStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refresh = nil
	s.unauthorized = nil
}

func (s *CredentialStore) refreshFunc() RefreshFunc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *CredentialStore) notifyUnauthorized() {
	s.mu.RLock()
	fn := s.unauthorized
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func trimBearerPrefix(token string) string {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(t), "bearer ") {
		t = strings.TrimSpace(t[7:])
	}
	return t
}
