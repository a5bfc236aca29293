// internal/handlers/installment/installment_handler.go
package installment

import (
	"net/http"
	"strconv"

	"landdeals-console/internal/domain/installment"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/response"
	installmentUsecase "landdeals-console/internal/service/installment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InstallmentHandler struct {
	installmentService *installmentUsecase.InstallmentService
	logger             *zap.Logger
}

func NewInstallmentHandler(installmentService *installmentUsecase.InstallmentService, logger *zap.Logger) *InstallmentHandler {
	return &InstallmentHandler{
		installmentService: installmentService,
		logger:             logger,
	}
}

// Preview recomputes the installment table for the posted form. Nothing is
// sent to the backend.
func (h *InstallmentHandler) Preview(c *gin.Context) {
	var req installment.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	preview, err := h.installmentService.Preview(&req)
	if err != nil {
		response.FromError(c, "invalid installment plan", err)
		return
	}

	response.Success(c, http.StatusOK, "preview computed", preview)
}

// Submit creates every installment of the plan as a pending payment.
func (h *InstallmentHandler) Submit(c *gin.Context) {
	dealID, err := strconv.ParseInt(c.Param("dealId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid deal ID", err)
		return
	}

	var req installment.SubmitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.installmentService.Submit(c.Request.Context(), middleware.BackendToken(c), dealID, &req)
	if err != nil {
		response.FromError(c, "failed to create installments", err)
		return
	}

	response.Success(c, http.StatusCreated, "installments created", result)
}
