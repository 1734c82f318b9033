package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/vsrclient/internal/client/storage"
	"github.com/dmitrijs2005/vsrclient/internal/common"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// SessionInfo is a point-in-time copy of the session.
type SessionInfo struct {
	Authenticated bool
	Email         string
	Role          string
	ExpiresAt     time.Time
}

// Session holds the bearer token and the role reported by /auth/me.
//
// The token is mirrored in the durable store, which is read once by Restore
// and written only by Session. Role is never persisted: it is empty until
// the identity is fetched and always empty without a token.
type Session struct {
	mu     sync.RWMutex
	store  storage.Store
	logger logging.Logger
	now    func() time.Time

	token     string
	email     string
	role      string
	expiresAt time.Time
}

func NewSession(store storage.Store, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{store: store, logger: logger, now: time.Now}
}

// Restore loads a previously saved token. A JWT whose exp claim has passed
// is discarded and removed from the store. Tokens that are not JWTs are
// kept as is.
func (s *Session) Restore(ctx context.Context) error {
	token, ok, err := s.store.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	exp, hasExp := tokenExpiry(token)
	if hasExp && !exp.After(s.now()) {
		s.logger.Info(ctx, "saved token expired, discarding", "expired_at", exp)
		return s.clearStore(ctx)
	}

	email, _, err := s.store.Get(ctx, common.EmailStorageKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.token, s.email, s.role, s.expiresAt = token, email, "", exp
	s.mu.Unlock()

	s.logger.Debug(ctx, "session restored", "email", email)
	return nil
}

// Start persists a freshly issued token and makes it current. Any previous
// role is dropped.
func (s *Session) Start(ctx context.Context, token, email string) error {
	err := s.store.Update(ctx, func(tx storage.Store) error {
		if err := tx.Set(ctx, common.TokenStorageKey, token); err != nil {
			return err
		}
		return tx.Set(ctx, common.EmailStorageKey, email)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	exp, _ := tokenExpiry(token)

	s.mu.Lock()
	s.token, s.email, s.role, s.expiresAt = token, email, "", exp
	s.mu.Unlock()
	return nil
}

// SetRole records the role for the current token. It is a no-op without a
// token.
func (s *Session) SetRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		s.role = role
	}
}

// Clear forgets the session in memory and in the store.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.email, s.role, s.expiresAt = "", "", "", time.Time{}
	s.mu.Unlock()

	return s.clearStore(ctx)
}

// Expire is called when the backend rejects the token with 401.
func (s *Session) Expire(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	s.logger.Warn(ctx, "session expired by server")
	if err := s.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear expired session", "error", err)
	}
}

func (s *Session) clearStore(ctx context.Context) error {
	err := s.store.Update(ctx, func(tx storage.Store) error {
		if err := tx.Delete(ctx, common.TokenStorageKey); err != nil {
			return err
		}
		return tx.Delete(ctx, common.EmailStorageKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Token returns the bearer token or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) IsAdmin() bool {
	return s.Role() == common.RoleAdmin
}

// ExpiresAt is the token's exp claim, or zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) Info() SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionInfo{
		Authenticated: s.token != "",
		Email:         s.email,
		Role:          s.role,
		ExpiresAt:     s.expiresAt,
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client has no key and the server remains the authority.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
