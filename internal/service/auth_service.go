package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/config"
	"github.com/spec-kit/requisition-service/internal/data"
	"github.com/spec-kit/requisition-service/internal/domain"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// AuthService owns the session lifecycle: login, restore, logout. Sessions
// are ephemeral projections of user records; every restore re-reads the
// user, so a role change or deactivation takes effect immediately.
type AuthService struct {
	data     *data.Manager
	sessions *SessionStore
	hasher   *auth.Hasher
	tokens   *auth.TokenManager
	ttl      time.Duration
	logger   *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Data     *data.Manager
	Sessions *SessionStore
	Hasher   *auth.Hasher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		data:     deps.Data,
		sessions: deps.Sessions,
		hasher:   deps.Hasher,
		tokens:   auth.NewTokenManager(cfg.JWTSecret),
		ttl:      cfg.SessionTTL(),
		logger:   logger,
	}
}

// Login verifies credentials and opens a session. Unknown-user and
// inactive-account failures carry distinct codes; a wrong password reports
// only incorrect credentials. Legacy credentials (plaintext or old salt
// form) are upgraded transparently on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	user, found := s.data.UserByUsername(ctx, username)
	if !found {
		return nil, "", apperrors.NewUserNotFound()
	}
	if user.Disabled {
		return nil, "", apperrors.NewAccountInactive()
	}

	normalized := auth.NormalizeUsername(user.Username)

	switch {
	case user.PasswordHash == "" && user.Password != "":
		// Pre-migration record: verify plaintext, then convert.
		if user.Password != password {
			return nil, "", apperrors.NewInvalidCredentials()
		}
		if err := s.upgradeHash(ctx, user, password, normalized); err != nil {
			return nil, "", err
		}
	case user.PasswordHash != "":
		ok, err := s.hasher.Verify(password, normalized, user.PasswordHash)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			legacy, err := s.hasher.VerifyLegacy(password, user.PasswordHash)
			if err != nil {
				return nil, "", err
			}
			if !legacy {
				return nil, "", apperrors.NewInvalidCredentials()
			}
			if err := s.upgradeHash(ctx, user, password, normalized); err != nil {
				return nil, "", err
			}
		}
	default:
		return nil, "", apperrors.NewInvalidCredentials()
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		User:      domain.SessionUserFrom(*user),
		ExpiresAt: time.Now().Add(s.ttl).UnixMilli(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	token, err := s.tokens.GenerateToken(session.ID, session.User.Role, time.UnixMilli(session.ExpiresAt))
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	s.logger.Info("login", zap.String("username", session.User.Username), zap.String("role", string(session.User.Role)))
	return &session, token, nil
}

// upgradeHash rewrites the stored credential under the current scheme and
// drops any plaintext remnant.
func (s *AuthService) upgradeHash(ctx context.Context, user *domain.User, password, normalized string) error {
	hash, err := s.hasher.HashPassword(password, normalized)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.Password = ""
	if err := s.data.SaveUser(ctx, user); err != nil {
		s.logger.Warn("credential upgrade not persisted", zap.String("username", user.Username), zap.Error(err))
	}
	return nil
}

// Resolve restores a session by id. A missing, malformed or expired
// session, or one whose user no longer exists or is disabled, resolves to
// nil with no error: not logged in. On success the session is refreshed
// from the latest user record and its expiry renewed.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, found := s.sessions.Get(ctx, sessionID)
	if !found {
		return nil, nil
	}
	if session.User.ID == "" || session.User.Username == "" || session.Expired(time.Now()) {
		s.sessions.Delete(ctx, sessionID)
		return nil, nil
	}

	user, found := s.data.UserByID(ctx, session.User.ID)
	if !found || user.Disabled {
		s.sessions.Delete(ctx, sessionID)
		return nil, nil
	}

	session.User = domain.SessionUserFrom(*user)
	session.ExpiresAt = time.Now().Add(s.ttl).UnixMilli()
	if err := s.sessions.Put(ctx, *session); err != nil {
		s.logger.Warn("session renewal not persisted", zap.Error(err))
	}
	return session, nil
}

// Logout clears the session unconditionally.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID != "" {
		s.sessions.Delete(ctx, sessionID)
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// IsFatalAuthError reports whether err is the unrecoverable
// hashing-unavailable condition rather than a user-presentable failure.
func IsFatalAuthError(err error) bool {
	return errors.Is(err, auth.ErrHashingUnavailable)
}
