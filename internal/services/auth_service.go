package services

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"wodash/internal/config"
	"wodash/internal/session"
)

// AuthService is the access gate: it checks credentials at the boundary and
// hands out session tokens, so nothing downstream ever sees a password.
type AuthService struct {
	cfg    config.AuthConfig
	store  *session.Store
	logger *slog.Logger
}

// NewAuthService creates the access gate over a session store.
func NewAuthService(cfg config.AuthConfig, store *session.Store, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		cfg:    cfg,
		store:  store,
		logger: logger.With(slog.String("component", "auth_service")),
	}
}

// Login validates the credentials and creates a session. Returns
// ErrInvalidCredentials on any mismatch; the reason is not disclosed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if !s.credentialsValid(username, password) {
		s.logger.WarnContext(ctx, "login rejected", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	sess := s.store.Create(username)
	s.logger.InfoContext(ctx, "login accepted",
		slog.String("username", username),
		slog.Int("active_sessions", s.store.Len()))
	return sess, nil
}

// Logout destroys the session for the given token. Unknown tokens are a
// no-op.
func (s *AuthService) Logout(ctx context.Context, token string) {
	s.store.Delete(token)
	s.logger.InfoContext(ctx, "session closed")
}

// Authenticate resolves a session token.
func (s *AuthService) Authenticate(token string) (*session.Session, bool) {
	if token == "" {
		return nil, false
	}
	return s.store.Get(token)
}

// credentialsValid compares username and password in constant time. A bcrypt
// hash takes precedence over the plaintext development password.
func (s *AuthService) credentialsValid(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1

	var passOK bool
	if s.cfg.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	}
	return userOK && passOK
}
