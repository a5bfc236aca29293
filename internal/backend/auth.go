// internal/backend/auth.go
package backend

import (
	"context"
	"net/http"

	"landdeals-console/internal/domain/auth"
)

// Login exchanges credentials for a backend token.
func (c *Client) Login(ctx context.Context, username, password string) (*auth.BackendLoginResponse, error) {
	in := map[string]string{"username": username, "password": password}

	var out auth.BackendLoginResponse
	if err := c.doJSON(ctx, "", http.MethodPost, "/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
