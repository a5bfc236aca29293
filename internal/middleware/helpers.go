// internal/middleware/helpers.go
package middleware

import (
	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/pkg/permission"

	"github.com/gin-gonic/gin"
)

// GetSession returns the session set by Auth.
func GetSession(c *gin.Context) (*auth.Session, bool) {
	v, exists := c.Get(ContextSession)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok && sess != nil
}

// MustGetSession gets the session from context or panics
func MustGetSession(c *gin.Context) *auth.Session {
	sess, ok := GetSession(c)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// GetUser returns the signed-in user.
func GetUser(c *gin.Context) (*auth.User, bool) {
	sess, ok := GetSession(c)
	if !ok {
		return nil, false
	}
	return &sess.User, true
}

// GetUserID returns the signed-in user's ID.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// BackendToken is the bearer token forwarded to the backend API.
func BackendToken(c *gin.Context) string {
	sess, ok := GetSession(c)
	if !ok {
		return ""
	}
	return sess.BackendToken
}

// HasCapability checks the signed-in user's role table entry.
func HasCapability(c *gin.Context, capability permission.Capability) bool {
	user, ok := GetUser(c)
	return ok && permission.HasCapability(user, capability)
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get(ContextSession)
	return exists
}

// IsAdmin checks if user is an admin
func IsAdmin(c *gin.Context) bool {
	user, ok := GetUser(c)
	return ok && user.Role == auth.RoleAdmin
}
