package session

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// Store holds the process-wide session. Writes are full replacements,
// performed only by successful-auth handlers; readers get a copy.
type Store struct {
	mu      sync.RWMutex
	current *domain.Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the session wholesale.
func (s *Store) Set(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess == nil {
		s.current = nil
		return
	}
	copied := *sess
	s.current = &copied
}

// Current returns a copy of the active session, if any.
func (s *Store) Current() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	copied := *s.current
	return &copied, true
}

// Clear drops the session on explicit logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

var _ domain.SessionStore = (*Store)(nil)

// FromAuthResult maps a completed auth round trip onto a Session,
// denormalizing the profile fields the navigation layer reads. The
// token's expiry claim is peeked without signature verification; the
// client holds no signing key and the server remains the authority.
func FromAuthResult(result *domain.AuthResult) *domain.Session {
	sess := &domain.Session{
		UserID:      result.User.ID,
		Role:        result.Role,
		Token:       result.Token,
		Name:        result.User.Name,
		Email:       result.User.Email,
		PhoneNumber: result.User.PhoneNumber,
	}

	parser := jwt.NewParser()
	if token, _, err := parser.ParseUnverified(result.Token, jwt.MapClaims{}); err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				sess.ExpiresAt = exp.Time
			}
		}
	}
	return sess
}
