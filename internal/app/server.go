// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"landdeals-console/internal/backend"
	"landdeals-console/internal/config"
	"landdeals-console/internal/db"
	authHandler "landdeals-console/internal/handlers/auth"
	dealHandler "landdeals-console/internal/handlers/deal"
	installmentHandler "landdeals-console/internal/handlers/installment"
	listviewHandler "landdeals-console/internal/handlers/listview"
	ownerHandler "landdeals-console/internal/handlers/owner"
	paymentHandler "landdeals-console/internal/handlers/payment"
	wsHandler "landdeals-console/internal/handlers/websocket"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/jwt"
	"landdeals-console/internal/pkg/session"
	authUsecase "landdeals-console/internal/service/auth"
	dealUsecase "landdeals-console/internal/service/deal"
	installmentUsecase "landdeals-console/internal/service/installment"
	listviewUsecase "landdeals-console/internal/service/listview"
	ownerUsecase "landdeals-console/internal/service/owner"
	paymentUsecase "landdeals-console/internal/service/payment"
	"landdeals-console/internal/websocket"
	wsHandlers "landdeals-console/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	mu         sync.Mutex
	httpServer *http.Server
	redis      *redis.Client
	views      *listviewUsecase.ListViewService
	stopHub    context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

// Start wires every component and serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Address:  s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))

	// ----- Backend API -----
	api := backend.NewClient(s.cfg.BackendURL, s.cfg.BackendTimeout, logger)
	verifier := jwt.NewVerifier(s.cfg.BackendJWTSecret)
	if s.cfg.BackendJWTSecret == "" {
		logger.Warn("BACKEND_JWT_SECRET not set, backend tokens are decoded without signature checks")
	}

	// ----- Sessions & Rate Limiter -----
	sessionStore := session.NewRedisStore(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)
	inFlight := session.NewInFlight(redisClient, s.cfg.InFlightTTL)

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(
		api,
		sessionStore,
		rateLimiter,
		verifier,
		s.cfg.SessionTTL,
		logger,
	)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(authService, logger)

	listViewService := listviewUsecase.NewListViewService(
		api,
		hub,
		inFlight,
		listviewUsecase.Config{PageSize: s.cfg.ListPageSize, Debounce: s.cfg.SearchDebounce},
		logger,
	)
	dealService := dealUsecase.NewDealService(api, logger)
	installmentService := installmentUsecase.NewInstallmentService(api, logger)
	paymentService := paymentUsecase.NewPaymentService(api, logger)
	ownerService := ownerUsecase.NewOwnerService(api, logger)

	// Register WebSocket handlers
	hub.RegisterHandler(wsHandlers.NewViewHandler(listViewService))

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:        authHandler.NewAuthHandler(authService, listViewService, hub, logger),
		DealHandler:        dealHandler.NewDealHandler(dealService, logger),
		InstallmentHandler: installmentHandler.NewInstallmentHandler(installmentService, logger),
		ListViewHandler:    listviewHandler.NewListViewHandler(listViewService, logger),
		PaymentHandler:     paymentHandler.NewPaymentHandler(paymentService, logger),
		OwnerHandler:       ownerHandler.NewOwnerHandler(ownerService, logger),
		WSHandler:          wsHandler.NewWebSocketHandler(hub, s.cfg.CORSOrigins, logger),
		AuthMiddleware:     middleware.NewAuthMiddleware(authService),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RequestID(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigins),
	)

	// ----- Router -----
	SetupRouter(s.engine, logger, handlers)

	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.redis = redisClient
	s.views = listViewService
	s.stopHub = stopHub
	s.mu.Unlock()

	// ----- Start HTTP -----
	logger.Info("server running",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("backend", s.cfg.BackendURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes every list view and socket,
// then releases Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)

	closed := s.views.CloseAll()
	s.stopHub()
	if cerr := s.redis.Close(); cerr != nil && err == nil {
		err = cerr
	}

	s.logger.Info("server stopped", zap.Int("views_closed", closed))
	_ = s.logger.Sync()
	return err
}
