package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"landdeals-console/internal/domain/auth"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/jwt"
	"landdeals-console/internal/pkg/session"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	resp *auth.BackendLoginResponse
	err  error
}

func (f *fakeBackend) Login(context.Context, string, string) (*auth.BackendLoginResponse, error) {
	return f.resp, f.err
}

type fakeLimiter struct {
	allowed bool
	resets  int
}

func (f *fakeLimiter) CheckLoginAttempt(context.Context, string, string) (bool, int64, error) {
	return f.allowed, 0, nil
}

func (f *fakeLimiter) ResetLoginAttempts(context.Context, string, string) error {
	f.resets++
	return nil
}

func backendToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := &jwt.Claims{
		UserID:           3,
		Username:         "meera",
		Role:             role,
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(exp)},
	}
	s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func newAuthService(b Backend, l LoginLimiter) (*AuthService, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return NewAuthService(b, store, l, jwt.NewVerifier(""), 24*time.Hour, zap.NewNop()), store
}

func TestLoginCreatesSession(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour)
	b := &fakeBackend{resp: &auth.BackendLoginResponse{
		Token: backendToken(t, auth.RoleAuditor, exp),
		User:  auth.User{ID: 3, Username: "meera", FullName: "Meera Shah"},
	}}
	lim := &fakeLimiter{allowed: true}
	svc, _ := newAuthService(b, lim)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{Username: " meera ", Password: "pw", IPAddress: "1.2.3.4"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, auth.RoleAuditor, resp.User.Role)
	assert.Equal(t, "Auditor", resp.RoleName)
	assert.Contains(t, resp.Capabilities, "payments:edit")
	assert.NotContains(t, resp.Capabilities, "system:admin")
	assert.WithinDuration(t, exp, resp.ExpiresAt, time.Second)
	assert.Equal(t, 1, lim.resets)

	sess, err := svc.Resolve(context.Background(), resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", sess.IPAddress)
	assert.Equal(t, b.resp.Token, sess.BackendToken)
}

func TestLoginRejectedCredentials(t *testing.T) {
	b := &fakeBackend{err: xerrors.ErrUnauthorized}
	svc, _ := newAuthService(b, nil)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLoginThrottled(t *testing.T) {
	svc, _ := newAuthService(&fakeBackend{}, &fakeLimiter{allowed: false})

	_, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, xerrors.ErrTooManyAttempts)
}

func TestLoginWithUnusableToken(t *testing.T) {
	svc, _ := newAuthService(&fakeBackend{resp: &auth.BackendLoginResponse{Token: "garbage"}}, nil)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, xerrors.ErrUpstream)

	svc, _ = newAuthService(&fakeBackend{resp: &auth.BackendLoginResponse{}}, nil)
	_, err = svc.Login(context.Background(), &auth.LoginRequest{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, xerrors.ErrUpstream)
}

func TestLoginFillsUserFromClaims(t *testing.T) {
	b := &fakeBackend{resp: &auth.BackendLoginResponse{Token: backendToken(t, auth.RoleAdmin, time.Now().Add(time.Hour))}}
	svc, _ := newAuthService(b, nil)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "x", Password: "y"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.User.ID)
	assert.Equal(t, "meera", resp.User.Username)
	assert.Equal(t, auth.RoleAdmin, resp.User.Role)
}

func TestLogoutAndSessions(t *testing.T) {
	b := &fakeBackend{resp: &auth.BackendLoginResponse{Token: backendToken(t, auth.RoleUser, time.Now().Add(time.Hour))}}
	svc, _ := newAuthService(b, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, &auth.LoginRequest{Username: "x", Password: "y"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &auth.LoginRequest{Username: "x", Password: "y"})
	require.NoError(t, err)

	current, err := svc.Resolve(ctx, second.SessionToken)
	require.NoError(t, err)

	list, err := svc.Sessions(ctx, current)
	require.NoError(t, err)
	require.Len(t, list, 2)
	currentCount := 0
	for _, info := range list {
		if info.Current {
			currentCount++
			assert.Equal(t, second.SessionToken, info.ID)
		}
	}
	assert.Equal(t, 1, currentCount)

	require.NoError(t, svc.Logout(ctx, current))
	_, err = svc.Resolve(ctx, second.SessionToken)
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)

	n, err := svc.LogoutAll(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = svc.Resolve(ctx, first.SessionToken)
	assert.True(t, errors.Is(err, xerrors.ErrSessionExpired))
}

func TestResolveEmptyID(t *testing.T) {
	svc, _ := newAuthService(&fakeBackend{}, nil)
	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthService(&fakeBackend{}, nil)
	me := svc.Me(&auth.Session{User: auth.User{Role: auth.RoleUser}})
	assert.Equal(t, "User", me.RoleName)
	assert.Empty(t, me.Capabilities)
	assert.Contains(t, me.RoleDescription, "Restricted")
}

func TestRevokeSession(t *testing.T) {
	b := &fakeBackend{resp: &auth.BackendLoginResponse{Token: backendToken(t, auth.RoleUser, time.Now().Add(time.Hour))}}
	svc, store := newAuthService(b, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, &auth.LoginRequest{Username: "x", Password: "y"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &auth.LoginRequest{Username: "x", Password: "y"})
	require.NoError(t, err)
	current, err := svc.Resolve(ctx, second.SessionToken)
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, &auth.Session{ID: "stranger", User: auth.User{ID: 99}, ExpiresAt: time.Now().Add(time.Hour)}))
	assert.ErrorIs(t, svc.RevokeSession(ctx, current, "stranger"), xerrors.ErrNotFound)
	assert.ErrorIs(t, svc.RevokeSession(ctx, current, "missing"), xerrors.ErrNotFound)

	require.NoError(t, svc.RevokeSession(ctx, current, first.SessionToken))
	_, err = svc.Resolve(ctx, first.SessionToken)
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}
