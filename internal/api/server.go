package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"backoffice/internal/api/handlers"
	"backoffice/internal/api/middleware"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config    *config.Config
	logger    *logger.Logger
	db        *database.Database
	router    *gin.Engine
	server    *http.Server
	analytics *handlers.AnalyticsHandler
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, logger)
	vendorHandler := handlers.NewVendorHandler(db.DB, logger)
	syncHandler := handlers.NewSyncHandler(db.DB, logger, cfg)
	orderHandler := handlers.NewOrderHandler(db.DB, logger, cfg)
	commissionHandler := handlers.NewCommissionHandler(db.DB, logger)
	invoiceHandler := handlers.NewInvoiceHandler(db.DB, logger)
	settingHandler := handlers.NewSettingHandler(db.DB, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(db.DB, logger, cfg)

	// Routes
	v1 := router.Group("/api/v1")

	// Public: operator login and the storefront tracking beacon
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.POST("/track", analyticsHandler.Track)

	secured := v1.Group("", middleware.Auth(cfg.JWTSecret))
	{
		// Vendors
		vendors := secured.Group("/vendors")
		{
			vendors.GET("", vendorHandler.List)
			vendors.GET("/:id", vendorHandler.Get)
			vendors.POST("", vendorHandler.Create)
			vendors.PUT("/:id", vendorHandler.Update)
			vendors.DELETE("/:id", vendorHandler.Delete)
			vendors.GET("/:id/products", vendorHandler.Products)
			vendors.POST("/:id/sync", syncHandler.Sync)
			vendors.POST("/:id/invoice", invoiceHandler.Generate)
		}

		// Orders
		orders := secured.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/manual", orderHandler.ListManual)
			orders.POST("/manual", orderHandler.CreateManual)
			orders.DELETE("/manual/:id", orderHandler.DeleteManual)
		}

		// Commissions
		commissions := secured.Group("/commissions")
		{
			commissions.GET("", commissionHandler.List)
			commissions.POST("", commissionHandler.Create)
			commissions.DELETE("/:id", commissionHandler.Delete)
		}

		// Invoices
		secured.GET("/invoices", invoiceHandler.List)

		// Settings
		settings := secured.Group("/settings")
		{
			settings.GET("", settingHandler.List)
			settings.GET("/:key", settingHandler.Get)
			settings.PUT("/:key", settingHandler.Upsert)
			settings.DELETE("/:key", settingHandler.Delete)
		}

		// Analytics
		secured.GET("/analytics/pageviews", analyticsHandler.PageViews)
	}

	return &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		router:    router,
		analytics: analyticsHandler,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// No write timeout: sync sessions stream progress for as long as
		// the remote API takes.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.analytics.Close(); err != nil {
		s.logger.Error("Failed to close analytics writer: %v", err)
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
