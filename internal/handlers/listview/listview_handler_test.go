package listview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/listview"
	"landdeals-console/internal/domain/owner"
	"landdeals-console/internal/listsync"
	"landdeals-console/internal/middleware"
	listviewUsecase "landdeals-console/internal/service/listview"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBackend struct {
	mu      sync.Mutex
	deleted []int64
}

func (s *stubBackend) ListOwners(_ context.Context, _ string, q listview.Query) (*listview.Page[owner.Owner], error) {
	return &listview.Page[owner.Owner]{
		Data:       []owner.Owner{{ID: 1, Name: "Asha"}, {ID: 2, Name: "Vikram"}},
		Pagination: listview.Pagination{Page: q.Page, Limit: q.Limit, Pages: 3, Total: 12},
	}, nil
}

func (s *stubBackend) StarOwner(context.Context, string, int64, bool) error { return nil }

func (s *stubBackend) DeleteOwner(_ context.Context, _ string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBackend) ListInvestors(context.Context, string, listview.Query) (*listview.Page[owner.Investor], error) {
	return &listview.Page[owner.Investor]{}, nil
}

func (s *stubBackend) StarInvestor(context.Context, string, int64, bool) error { return nil }
func (s *stubBackend) DeleteInvestor(context.Context, string, int64) error     { return nil }

func withSession(sess *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSession, sess)
		c.Next()
	}
}

func setup(t *testing.T, sess *auth.Session) (*gin.Engine, *listviewUsecase.ListViewService, *stubBackend) {
	t.Helper()
	backend := &stubBackend{}
	svc := listviewUsecase.NewListViewService(backend, nil, listsync.NewMemoryInFlight(),
		listviewUsecase.Config{PageSize: 5, Debounce: 20 * time.Millisecond}, zap.NewNop())
	t.Cleanup(func() { svc.CloseAll() })
	h := NewListViewHandler(svc, zap.NewNop())

	r := gin.New()
	g := r.Group("/views", withSession(sess))
	g.POST("", h.OpenView)
	g.GET("/:viewId", h.GetView)
	g.PUT("/:viewId/search", h.Search)
	g.PUT("/:viewId/sort", h.Sort)
	g.PUT("/:viewId/page", h.Page)
	g.DELETE("/:viewId/records/:id", h.DeleteRecord)
	g.DELETE("/:viewId", h.CloseView)
	return r, svc, backend
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func snapshotOf(t *testing.T, w *httptest.ResponseRecorder) listview.Snapshot {
	t.Helper()
	var body struct {
		Data listview.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func admin() *auth.Session {
	return &auth.Session{ID: "s1", BackendToken: "bt", User: auth.User{ID: 1, Role: auth.RoleAdmin}}
}

func TestOpenView(t *testing.T) {
	r, svc, _ := setup(t, admin())

	w := send(r, http.MethodPost, "/views", `{"resource":"owners"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	snap := snapshotOf(t, w)
	assert.NotEmpty(t, snap.ViewID)
	assert.Equal(t, 3, snap.Pagination.Pages)
	assert.Equal(t, 1, svc.Count())
}

func TestOpenViewRejectsUnknownResource(t *testing.T) {
	r, _, _ := setup(t, admin())

	w := send(r, http.MethodPost, "/views", `{"resource":"deals"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenViewForbiddenForPlainUser(t *testing.T) {
	r, _, _ := setup(t, &auth.Session{ID: "s2", User: auth.User{ID: 2, Role: auth.RoleUser}})

	w := send(r, http.MethodPost, "/views", `{"resource":"owners"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestViewOperations(t *testing.T) {
	r, _, backend := setup(t, admin())
	viewID := snapshotOf(t, send(r, http.MethodPost, "/views", `{"resource":"owners"}`)).ViewID

	w := send(r, http.MethodPut, "/views/"+viewID+"/page", `{"page":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, snapshotOf(t, w).Query.Page)

	w = send(r, http.MethodPut, "/views/"+viewID+"/page", `{"page":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPut, "/views/"+viewID+"/sort", `{"sort_by":"password"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPut, "/views/"+viewID+"/search", `{"search":"ash"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "ash", snapshotOf(t, w).DisplayedTerm)

	w = send(r, http.MethodDelete, "/views/"+viewID+"/records/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, backend.deleted)

	w = send(r, http.MethodDelete, "/views/"+viewID+"/records/1?confirm=true", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []int64{1}, backend.deleted)

	w = send(r, http.MethodDelete, "/views/"+viewID+"/records/abc?confirm=true", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClosedViewIsGone(t *testing.T) {
	r, _, _ := setup(t, admin())
	viewID := snapshotOf(t, send(r, http.MethodPost, "/views", `{"resource":"owners"}`)).ViewID

	w := send(r, http.MethodDelete, "/views/"+viewID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodGet, "/views/"+viewID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
