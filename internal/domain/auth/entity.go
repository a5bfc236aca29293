// internal/domain/auth/entity.go
package auth

import "time"

// Role names issued by the backend.
const (
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"
	RoleUser    = "user"
)

// User is the signed-in console user as reported by the backend at login.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name,omitempty"`
	Role       string `json:"role"`
	InvestorID *int64 `json:"investor_id,omitempty"`
	OwnerID    *int64 `json:"owner_id,omitempty"`
}

// Session is what the console keeps per signed-in browser: the backend
// bearer token plus the user it belongs to.
type Session struct {
	ID           string    `json:"id"`
	BackendToken string    `json:"backend_token"`
	User         User      `json:"user"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	LoginAt      time.Time `json:"login_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
