// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/response"
	authUsecase "landdeals-console/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewCloser tears down the list views a session holds.
type ViewCloser interface {
	CloseSession(sessionID string) int
	CloseUser(userID int64) int
}

// SocketCloser drops the websocket connections of a session.
type SocketCloser interface {
	ForceLogout(userID int64, sessionID string, reason string)
	DisconnectSession(userID int64, sessionID string, reason string)
}

type AuthHandler struct {
	authService *authUsecase.AuthService
	views       ViewCloser
	sockets     SocketCloser
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, views ViewCloser, sockets SocketCloser, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		views:       views,
		sockets:     sockets,
		logger:      logger,
	}
}

// ========== Login ==========

// Login forwards the credentials to the backend and opens a console session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	// Set IP and User-Agent
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("username", req.Username),
			zap.String("ip", req.IPAddress),
			zap.Error(err),
		)
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// ========== Logout ==========

func (h *AuthHandler) endSession(userID int64, sessionID, reason string) {
	if h.views != nil {
		h.views.CloseSession(sessionID)
	}
	if h.sockets != nil {
		h.sockets.ForceLogout(userID, sessionID, reason)
		h.sockets.DisconnectSession(userID, sessionID, reason)
	}
}

// Logout ends the current session (requires auth)
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	if err := h.authService.Logout(c.Request.Context(), sess); err != nil {
		h.logger.Error("logout failed",
			zap.Int64("user_id", sess.User.ID),
			zap.Error(err),
		)
		response.FromError(c, "logout failed", err)
		return
	}
	h.endSession(sess.User.ID, sess.ID, "logout")

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// LogoutAll ends every session of the user (requires auth)
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	n, err := h.authService.LogoutAll(c.Request.Context(), sess.User.ID)
	if err != nil {
		response.FromError(c, "logout all failed", err)
		return
	}
	if h.views != nil {
		h.views.CloseUser(sess.User.ID)
	}
	if h.sockets != nil {
		h.sockets.ForceLogout(sess.User.ID, "", "logout_all")
		h.sockets.DisconnectSession(sess.User.ID, "", "logout_all")
	}

	response.Success(c, http.StatusOK, "all sessions logged out", gin.H{"sessions": n})
}

// ========== Profile & Sessions ==========

// GetMe returns the signed-in user with their role and capabilities.
func (h *AuthHandler) GetMe(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	response.Success(c, http.StatusOK, "user retrieved", h.authService.Me(sess))
}

// GetActiveSessions lists the user's sessions.
func (h *AuthHandler) GetActiveSessions(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	sessions, err := h.authService.Sessions(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, "failed to list sessions", err)
		return
	}

	response.Success(c, http.StatusOK, "sessions retrieved", sessions)
}

// RevokeSession ends one of the user's other sessions.
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	target := c.Param("session_id")

	if err := h.authService.RevokeSession(c.Request.Context(), sess, target); err != nil {
		response.FromError(c, "failed to revoke session", err)
		return
	}
	h.endSession(sess.User.ID, target, "revoked")

	response.Success(c, http.StatusOK, "session revoked", nil)
}
