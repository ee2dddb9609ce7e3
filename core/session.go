package core

import "sync"

// Meta is the per-call metadata sent alongside the input.
type Meta struct {
	Token string `json:"token"`
}

// Session holds the authentication token shared by the calls of a Client.
// Session is safe for concurrent use. Calls read the token once when they
// start, so a login or logout never changes a request already in flight.
type Session struct {
	mu    sync.RWMutex
	token Token
}

// NewSession returns a session holding token. An empty token means logged out.
func NewSession(token string) *Session {
	return &Session{token: NewToken(token)}
}

// Token returns the current token.
func (s *Session) Token() Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the current token.
func (s *Session) Set(token string) {
	s.mu.Lock()
	s.token = NewToken(token)
	s.mu.Unlock()
}

// Clear forgets the current token.
func (s *Session) Clear() {
	s.Set("")
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return !s.Token().IsEmpty()
}

// Meta returns a snapshot of the call metadata, or nil without a token.
func (s *Session) Meta() *Meta {
	token := s.Token()
	if token.IsEmpty() {
		return nil
	}
	return &Meta{Token: token.Expose()}
}
