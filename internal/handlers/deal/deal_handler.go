// internal/handlers/deal/deal_handler.go
package deal

import (
	"net/http"
	"strconv"

	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/response"
	dealUsecase "landdeals-console/internal/service/deal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DealHandler struct {
	dealService *dealUsecase.DealService
	logger      *zap.Logger
}

func NewDealHandler(dealService *dealUsecase.DealService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		dealService: dealService,
		logger:      logger,
	}
}

// GetDeal returns the normalized deal if the user may see it.
func (h *DealHandler) GetDeal(c *gin.Context) {
	dealID, err := strconv.ParseInt(c.Param("dealId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid deal ID", err)
		return
	}

	user, _ := middleware.GetUser(c)
	d, err := h.dealService.Get(c.Request.Context(), middleware.BackendToken(c), user, dealID)
	if err != nil {
		response.FromError(c, "failed to load deal", err)
		return
	}

	response.Success(c, http.StatusOK, "deal retrieved", d)
}
