// internal/handlers/payment/payment_handler.go
package payment

import (
	"net/http"
	"strconv"

	"landdeals-console/internal/domain/payment"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/response"
	paymentUsecase "landdeals-console/internal/service/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxProofSize caps an uploaded proof file.
const MaxProofSize = 10 << 20

type PaymentHandler struct {
	paymentService *paymentUsecase.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *paymentUsecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid "+param, err)
		return 0, false
	}
	return id, true
}

func parseDealPayment(c *gin.Context) (int64, int64, bool) {
	dealID, ok := parseID(c, "dealId")
	if !ok {
		return 0, 0, false
	}
	paymentID, ok := parseID(c, "paymentId")
	if !ok {
		return 0, 0, false
	}
	return dealID, paymentID, true
}

// ListPayments returns the deal's payments with their total.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	dealID, ok := parseID(c, "dealId")
	if !ok {
		return
	}

	list, err := h.paymentService.List(c.Request.Context(), middleware.BackendToken(c), dealID)
	if err != nil {
		response.FromError(c, "failed to load payments", err)
		return
	}

	response.Success(c, http.StatusOK, "payments retrieved", list)
}

// GetPayment returns the payment with its proofs and installment siblings.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	dealID, paymentID, ok := parseDealPayment(c)
	if !ok {
		return
	}

	detail, err := h.paymentService.Detail(c.Request.Context(), middleware.BackendToken(c), dealID, paymentID)
	if err != nil {
		response.FromError(c, "failed to load payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment retrieved", detail)
}

// CreatePayment records one payment against the deal.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	dealID, ok := parseID(c, "dealId")
	if !ok {
		return
	}

	var req payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.paymentService.Create(c.Request.Context(), middleware.BackendToken(c), dealID, &req)
	if err != nil {
		response.FromError(c, "failed to create payment", err)
		return
	}

	response.Success(c, http.StatusCreated, "payment created successfully", p)
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	dealID, paymentID, ok := parseDealPayment(c)
	if !ok {
		return
	}

	var req payment.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.paymentService.Update(c.Request.Context(), middleware.BackendToken(c), dealID, paymentID, &req)
	if err != nil {
		response.FromError(c, "failed to update payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment updated successfully", p)
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	dealID, paymentID, ok := parseDealPayment(c)
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), middleware.BackendToken(c), dealID, paymentID); err != nil {
		response.FromError(c, "failed to delete payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment deleted successfully", nil)
}

func (h *PaymentHandler) ListProofs(c *gin.Context) {
	dealID, paymentID, ok := parseDealPayment(c)
	if !ok {
		return
	}

	proofs, err := h.paymentService.ListProofs(c.Request.Context(), middleware.BackendToken(c), dealID, paymentID)
	if err != nil {
		response.FromError(c, "failed to load proofs", err)
		return
	}

	response.Success(c, http.StatusOK, "proofs retrieved", proofs)
}

// UploadProof forwards the multipart "proof" file to the backend.
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	dealID, paymentID, ok := parseDealPayment(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxProofSize)
	header, err := c.FormFile("proof")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "proof file is required", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable proof file", err)
		return
	}
	defer file.Close()

	proof, err := h.paymentService.UploadProof(c.Request.Context(), middleware.BackendToken(c), dealID, paymentID, header.Filename, file)
	if err != nil {
		response.FromError(c, "failed to upload proof", err)
		return
	}

	response.Success(c, http.StatusCreated, "proof uploaded", proof)
}

func (h *PaymentHandler) DeleteProof(c *gin.Context) {
	dealID, paymentID, ok := parseDealPayment(c)
	if !ok {
		return
	}
	proofID, ok := parseID(c, "proofId")
	if !ok {
		return
	}

	if err := h.paymentService.DeleteProof(c.Request.Context(), middleware.BackendToken(c), dealID, paymentID, proofID); err != nil {
		response.FromError(c, "failed to delete proof", err)
		return
	}

	response.Success(c, http.StatusOK, "proof deleted", nil)
}
