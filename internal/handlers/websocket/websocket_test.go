package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"landdeals-console/internal/domain/auth"
	xerrors "landdeals-console/internal/pkg/errors"
	ws "landdeals-console/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noSessions struct{}

func (noSessions) Resolve(context.Context, string) (*auth.Session, error) {
	return nil, xerrors.ErrSessionExpired
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	anyOrigin := originChecker([]string{"*"})
	assert.True(t, anyOrigin(req("https://evil.example")))

	listed := originChecker([]string{"https://console.example", " https://ops.example "})
	assert.True(t, listed(req("https://ops.example")))
	assert.True(t, listed(req("")))
	assert.False(t, listed(req("https://evil.example")))

	assert.True(t, originChecker(nil)(req("https://anything.example")))
}

func TestHandleConnectionRejectsBadTokens(t *testing.T) {
	h := NewWebSocketHandler(ws.NewHub(noSessions{}, zap.NewNop()), nil, zap.NewNop())
	r := gin.New()
	r.GET("/ws", h.HandleConnection)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authentication token")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=stale", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication failed")
}

func TestGetStats(t *testing.T) {
	h := NewWebSocketHandler(ws.NewHub(noSessions{}, zap.NewNop()), nil, zap.NewNop())
	r := gin.New()
	r.GET("/stats", h.GetStats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_connections":0`)
}
