package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/repository"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

// LoginResult is returned after a successful login.
type LoginResult struct {
	Session   *domain.Session
	Token     string
	ExpiresAt time.Time
}

// SessionManager issues and validates sessions with an absolute lifetime.
type SessionManager struct {
	accounts *AccountService
	sessions repository.SessionRepository
	tokens   *auth.TokenManager
	ttl      time.Duration
	logger   *zap.Logger
	now      Clock
}

// SessionDependencies bundles collaborators for the session manager.
type SessionDependencies struct {
	Accounts    *AccountService
	SessionRepo repository.SessionRepository
	Tokens      *auth.TokenManager
	Logger      *zap.Logger
	Clock       Clock
}

// NewSessionManager constructs the manager.
func NewSessionManager(cfg config.AuthConfig, deps SessionDependencies) *SessionManager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		accounts: deps.Accounts,
		sessions: deps.SessionRepo,
		tokens:   deps.Tokens,
		ttl:      cfg.SessionTTL(),
		logger:   logger,
		now:      deps.Clock.orDefault(),
	}
}

// TTL returns the absolute session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Login authenticates the caller and stores a session stamped with the
// current time.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := m.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      user.Public(),
		LoginTime: m.now(),
	}
	if err := m.sessions.Save(ctx, session, m.ttl); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	expiresAt := session.ExpiresAt(m.ttl)
	token, err := m.tokens.GenerateToken(session, expiresAt)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	m.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return &LoginResult{Session: session, Token: token, ExpiresAt: expiresAt}, nil
}

// Current returns the live session. Expired sessions are purged and reported
// as unauthorized.
func (m *SessionManager) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := m.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized("no active session")
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if !session.ValidAt(m.now(), m.ttl) {
		m.purge(ctx, sessionID, "expired")
		return nil, apperrors.NewUnauthorized("session expired")
	}
	return session, nil
}

// CurrentUser resolves the session's user against the credential store so a
// removed account cannot keep using an old session.
func (m *SessionManager) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	session, err := m.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := m.accounts.GetByID(ctx, session.User.ID)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		m.purge(ctx, sessionID, "account missing")
		return nil, apperrors.NewUnauthorized("account no longer active")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout deletes the session. Logging out twice is not an error.
func (m *SessionManager) Logout(ctx context.Context, sessionID string) error {
	if err := m.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (m *SessionManager) purge(ctx context.Context, sessionID, reason string) {
	if err := m.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		m.logger.Warn("session purge failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	m.logger.Info("session ended", zap.String("session_id", sessionID), zap.String("reason", reason))
}
