// internal/app/router.go
package app

import (
	"net/http"

	authHandler "landdeals-console/internal/handlers/auth"
	dealHandler "landdeals-console/internal/handlers/deal"
	installmentHandler "landdeals-console/internal/handlers/installment"
	listviewHandler "landdeals-console/internal/handlers/listview"
	ownerHandler "landdeals-console/internal/handlers/owner"
	paymentHandler "landdeals-console/internal/handlers/payment"
	wsHandler "landdeals-console/internal/handlers/websocket"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/permission"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	DealHandler        *dealHandler.DealHandler
	InstallmentHandler *installmentHandler.InstallmentHandler
	ListViewHandler    *listviewHandler.ListViewHandler
	PaymentHandler     *paymentHandler.PaymentHandler
	OwnerHandler       *ownerHandler.OwnerHandler
	WSHandler          *wsHandler.WebSocketHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")
	m := h.AuthMiddleware

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)
	api.GET("/ws/stats", append(m.AdminOnly(), h.WSHandler.GetStats)...)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(m.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.POST("/logout-all", h.AuthHandler.LogoutAll)
		authProtected.GET("/me", h.AuthHandler.GetMe)
		authProtected.GET("/sessions", h.AuthHandler.GetActiveSessions)
		authProtected.DELETE("/sessions/:session_id", h.AuthHandler.RevokeSession)
	}

	// ==================== Deals & Installment Plans ====================
	// Restricted users reach only their own deals; the deal service checks.
	deals := api.Group("/deals")
	deals.Use(m.Auth())
	{
		deals.GET("/:dealId", h.DealHandler.GetDeal)
		deals.POST("/:dealId/plans/preview", m.RequireCapability(permission.PaymentsCreate), h.InstallmentHandler.Preview)
		deals.POST("/:dealId/plans", m.RequireCapability(permission.PaymentsCreate), h.InstallmentHandler.Submit)
	}

	// ==================== List Views ====================
	// Capabilities per resource are checked when a view is opened.
	views := api.Group("/views")
	views.Use(m.Auth())
	{
		views.POST("", h.ListViewHandler.OpenView)
		views.GET("/:viewId", h.ListViewHandler.GetView)
		views.PUT("/:viewId/search", h.ListViewHandler.Search)
		views.PUT("/:viewId/sort", h.ListViewHandler.Sort)
		views.PUT("/:viewId/filter", h.ListViewHandler.Filter)
		views.PUT("/:viewId/page", h.ListViewHandler.Page)
		views.POST("/:viewId/refresh", h.ListViewHandler.Refresh)
		views.POST("/:viewId/records/:id/toggle", h.ListViewHandler.ToggleFlag)
		views.DELETE("/:viewId/records/:id", h.ListViewHandler.DeleteRecord) // ?confirm=true
		views.DELETE("/:viewId", h.ListViewHandler.CloseView)
	}

	// ==================== Payments ====================
	// Reads are scoped by the backend to what the token may see.
	payments := api.Group("/payments")
	payments.Use(m.Auth())
	{
		payments.GET("/:dealId", h.PaymentHandler.ListPayments)
		payments.POST("/:dealId", m.RequireCapability(permission.PaymentsCreate), h.PaymentHandler.CreatePayment)
		payments.GET("/:dealId/:paymentId", h.PaymentHandler.GetPayment)
		payments.PUT("/:dealId/:paymentId", m.RequireCapability(permission.PaymentsEdit), h.PaymentHandler.UpdatePayment)
		payments.DELETE("/:dealId/:paymentId", m.RequireCapability(permission.PaymentsDelete), h.PaymentHandler.DeletePayment)

		// Proofs
		payments.GET("/:dealId/:paymentId/proofs", h.PaymentHandler.ListProofs)
		payments.POST("/:dealId/:paymentId/proof", m.RequireCapability(permission.DocumentsUpload), h.PaymentHandler.UploadProof)
		payments.DELETE("/:dealId/:paymentId/proofs/:proofId", m.RequireCapability(permission.DocumentsDelete), h.PaymentHandler.DeleteProof)
	}

	// ==================== Owners ====================
	owners := api.Group("/owners")
	owners.Use(m.Auth())
	{
		owners.GET("/:id", m.RequireCapability(permission.OwnersView), h.OwnerHandler.GetOwner)
		owners.PUT("/:id", m.RequireCapability(permission.OwnersEdit), h.OwnerHandler.UpdateOwner)
	}

	logger.Info("routes registered", zap.Int("count", len(r.Routes())))
}
