// internal/handlers/owner/owner_handler.go
package owner

import (
	"net/http"
	"strconv"

	"landdeals-console/internal/domain/owner"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/response"
	ownerUsecase "landdeals-console/internal/service/owner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OwnerHandler struct {
	ownerService *ownerUsecase.OwnerService
	logger       *zap.Logger
}

func NewOwnerHandler(ownerService *ownerUsecase.OwnerService, logger *zap.Logger) *OwnerHandler {
	return &OwnerHandler{
		ownerService: ownerService,
		logger:       logger,
	}
}

func (h *OwnerHandler) GetOwner(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid owner ID", err)
		return
	}

	o, err := h.ownerService.Get(c.Request.Context(), middleware.BackendToken(c), ownerID)
	if err != nil {
		response.FromError(c, "failed to load owner", err)
		return
	}

	response.Success(c, http.StatusOK, "owner retrieved", o)
}

func (h *OwnerHandler) UpdateOwner(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid owner ID", err)
		return
	}

	var req owner.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	o, err := h.ownerService.Update(c.Request.Context(), middleware.BackendToken(c), ownerID, &req)
	if err != nil {
		response.FromError(c, "failed to update owner", err)
		return
	}

	response.Success(c, http.StatusOK, "owner updated successfully", o)
}
