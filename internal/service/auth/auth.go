// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"landdeals-console/internal/domain/auth"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/jwt"
	"landdeals-console/internal/pkg/permission"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Backend issues tokens for credentials.
type Backend interface {
	Login(ctx context.Context, username, password string) (*auth.BackendLoginResponse, error)
}

// SessionStore keeps console sessions.
type SessionStore interface {
	Create(ctx context.Context, sess *auth.Session) error
	Get(ctx context.Context, id string) (*auth.Session, error)
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID int64) ([]*auth.Session, error)
	DeleteAllForUser(ctx context.Context, userID int64) (int, error)
}

// LoginLimiter throttles repeated login attempts.
type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, username string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, username string) error
}

type AuthService struct {
	backend    Backend
	sessions   SessionStore
	limiter    LoginLimiter
	verifier   *jwt.Verifier
	sessionTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService wires the login flow. limiter may be nil.
func NewAuthService(
	backend Backend,
	sessions SessionStore,
	limiter LoginLimiter,
	verifier *jwt.Verifier,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		backend:    backend,
		sessions:   sessions,
		limiter:    limiter,
		verifier:   verifier,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Login forwards the credentials to the backend and, on success, keeps the
// backend token in a new console session.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	// Rate limiting
	if s.limiter != nil {
		allowed, _, err := s.limiter.CheckLoginAttempt(ctx, req.IPAddress, username)
		if err != nil {
			s.logger.Warn("rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			return nil, fmt.Errorf("%w: too many login attempts, please try again in 15 minutes", xerrors.ErrTooManyAttempts)
		}
	}

	resp, err := s.backend.Login(ctx, username, req.Password)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) || errors.Is(err, xerrors.ErrBadRequest) {
			return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", xerrors.ErrUpstream)
	}

	claims, err := s.verifier.Verify(resp.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: backend token rejected: %v", xerrors.ErrUpstream, err)
	}

	user := resp.User
	if user.ID == 0 {
		user.ID = claims.UserID
	}
	if user.Username == "" {
		user.Username = claims.Username
	}
	if user.Role == "" {
		user.Role = claims.Role
	}

	now := s.now()
	expiresAt := now.Add(s.sessionTTL)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expiresAt) {
		expiresAt = claims.ExpiresAt.Time
	}

	sess := &auth.Session{
		ID:           ulid.Make().String(),
		BackendToken: resp.Token,
		User:         user,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
		LoginAt:      now,
		ExpiresAt:    expiresAt,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.ResetLoginAttempts(ctx, req.IPAddress, username); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("ip", req.IPAddress))

	return &auth.LoginResponse{
		SessionToken: sess.ID,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		User:         user,
		Capabilities: permission.Strings(user.Role),
		RoleName:     permission.RoleName(user.Role),
	}, nil
}

// Resolve returns the live session for id.
func (s *AuthService) Resolve(ctx context.Context, id string) (*auth.Session, error) {
	if id == "" {
		return nil, xerrors.ErrSessionExpired
	}

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, id)
		return nil, xerrors.ErrSessionExpired
	}
	return sess, nil
}

// Logout drops one session.
func (s *AuthService) Logout(ctx context.Context, sess *auth.Session) error {
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("user logged out", zap.Int64("user_id", sess.User.ID))
	return nil
}

// LogoutAll drops every session of the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) (int, error) {
	n, err := s.sessions.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	s.logger.Info("user logged out everywhere", zap.Int64("user_id", userID), zap.Int("sessions", n))
	return n, nil
}

// Me describes the session's user.
func (s *AuthService) Me(sess *auth.Session) *auth.MeResponse {
	return &auth.MeResponse{
		User:            sess.User,
		RoleName:        permission.RoleName(sess.User.Role),
		RoleDescription: permission.RoleDescription(sess.User.Role),
		Capabilities:    permission.Strings(sess.User.Role),
		ExpiresAt:       sess.ExpiresAt,
	}
}

// Sessions lists the user's live sessions, marking the current one.
func (s *AuthService) Sessions(ctx context.Context, current *auth.Session) ([]auth.SessionInfo, error) {
	list, err := s.sessions.ListForUser(ctx, current.User.ID)
	if err != nil {
		return nil, err
	}

	out := make([]auth.SessionInfo, 0, len(list))
	for _, sess := range list {
		out = append(out, auth.SessionInfo{
			ID:        sess.ID,
			IPAddress: sess.IPAddress,
			UserAgent: sess.UserAgent,
			LoginAt:   sess.LoginAt,
			ExpiresAt: sess.ExpiresAt,
			Current:   sess.ID == current.ID,
		})
	}
	return out, nil
}

// RevokeSession ends another session of the same user. Sessions of other
// users are reported as missing.
func (s *AuthService) RevokeSession(ctx context.Context, current *auth.Session, id string) error {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, xerrors.ErrSessionExpired) {
			return fmt.Errorf("%w: session %s", xerrors.ErrNotFound, id)
		}
		return err
	}
	if sess.User.ID != current.User.ID {
		return fmt.Errorf("%w: session %s", xerrors.ErrNotFound, id)
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("session revoked",
		zap.Int64("user_id", current.User.ID),
		zap.String("session_id", id))
	return nil
}
