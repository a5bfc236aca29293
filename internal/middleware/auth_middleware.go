// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"landdeals-console/internal/domain/auth"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/permission"
	"landdeals-console/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth.
const (
	ContextSession = "session"
	ContextUserID  = "user_id"
	ContextRole    = "role"
)

// SessionResolver turns a console session token into its session.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*auth.Session, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
}

func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
	}
}

// Auth resolves the Bearer session token and stores the session in the
// request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", xerrors.ErrUnauthorized)
			return
		}

		sess, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, xerrors.ErrSessionExpired) {
				response.Error(c, http.StatusUnauthorized, "invalid or expired session", err)
				return
			}
			response.FromError(c, "failed to load session", err)
			return
		}

		c.Set(ContextSession, sess)
		c.Set(ContextUserID, sess.User.ID)
		c.Set(ContextRole, sess.User.Role)

		c.Next()
	}
}

// RequireCapability requires at least one of caps.
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequireCapability(caps ...permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "authentication required", xerrors.ErrUnauthorized)
			return
		}

		if !permission.HasAny(user, caps...) {
			response.Error(c, http.StatusForbidden, "insufficient permissions", xerrors.ErrForbidden, map[string]interface{}{
				"required_capabilities": caps,
				"role":                  user.Role,
			})
			return
		}

		c.Next()
	}
}

// RequireAllCapabilities requires every one of caps.
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequireAllCapabilities(caps ...permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "authentication required", xerrors.ErrUnauthorized)
			return
		}

		for _, required := range caps {
			if !permission.HasCapability(user, required) {
				response.Error(c, http.StatusForbidden, "insufficient permissions", xerrors.ErrForbidden, map[string]interface{}{
					"required_capabilities": caps,
					"missing_capability":    required,
				})
				return
			}
		}

		c.Next()
	}
}

// WithCapability returns Auth followed by RequireCapability.
func (m *AuthMiddleware) WithCapability(caps ...permission.Capability) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireCapability(caps...),
	}
}

// AdminOnly returns middlewares for system administration routes.
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return m.WithCapability(permission.SystemAdmin)
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}
