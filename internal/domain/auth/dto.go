// internal/domain/auth/dto.go
package auth

import "time"

// LoginRequest for user login
type LoginRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// BackendLoginResponse is the body returned by the backend's /login.
type BackendLoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginResponse successful login response
type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
	Capabilities []string  `json:"capabilities"`
	RoleName     string    `json:"role_name"`
}

// MeResponse describes the signed-in user and what they may do.
type MeResponse struct {
	User            User      `json:"user"`
	RoleName        string    `json:"role_name"`
	RoleDescription string    `json:"role_description"`
	Capabilities    []string  `json:"capabilities"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// SessionInfo is a session as listed back to its owner. The backend token
// never leaves the server.
type SessionInfo struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}
