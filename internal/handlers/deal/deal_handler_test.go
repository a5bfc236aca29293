package deal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/deal"
	"landdeals-console/internal/middleware"
	dealUsecase "landdeals-console/internal/service/deal"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBackend struct{}

func (stubBackend) GetDeal(_ context.Context, _ string, id int64) (*deal.Deal, error) {
	return &deal.Deal{ID: id, ProjectName: "Riverside", Investors: []deal.Party{{InvestorID: 9}}}, nil
}

func get(sess *auth.Session, path string) *httptest.ResponseRecorder {
	h := NewDealHandler(dealUsecase.NewDealService(stubBackend{}, zap.NewNop()), zap.NewNop())
	r := gin.New()
	r.GET("/deals/:dealId", func(c *gin.Context) {
		c.Set(middleware.ContextSession, sess)
	}, h.GetDeal)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetDeal(t *testing.T) {
	investorID := int64(9)
	other := int64(3)

	tests := []struct {
		name string
		user auth.User
		path string
		want int
	}{
		{"admin", auth.User{ID: 1, Role: auth.RoleAdmin}, "/deals/5", http.StatusOK},
		{"assigned investor", auth.User{ID: 2, Role: auth.RoleUser, InvestorID: &investorID}, "/deals/5", http.StatusOK},
		{"other investor", auth.User{ID: 3, Role: auth.RoleUser, InvestorID: &other}, "/deals/5", http.StatusForbidden},
		{"bad id", auth.User{ID: 1, Role: auth.RoleAdmin}, "/deals/five", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(&auth.Session{ID: "s", User: tt.user}, tt.path)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
