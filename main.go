package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/invoice-system/config"
	"github.com/yourusername/invoice-system/handlers"
	"github.com/yourusername/invoice-system/logger"
	"github.com/yourusername/invoice-system/middleware"
	"github.com/yourusername/invoice-system/service"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	svc := service.NewInvoiceService(db, cfg, log)

	// Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "invoice-api",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(middleware.JwtAuthMiddleware(cfg))
	}
	{
		// Customer endpoints
		customerHandler := handlers.NewCustomerHandler(svc)
		api.POST("/customers", customerHandler.CreateCustomer)
		api.GET("/customers", customerHandler.ListCustomers)
		api.GET("/customers/:id", customerHandler.GetCustomer)

		// Invoice endpoints
		invoiceHandler := handlers.NewInvoiceHandler(svc, cfg)
		api.POST("/invoices", invoiceHandler.CreateInvoice)
		api.GET("/invoices", invoiceHandler.ListInvoices)
		api.GET("/invoices/:id", invoiceHandler.GetInvoice)
		api.GET("/invoices/:id/pdf", invoiceHandler.GenerateInvoicePDF)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info("Starting invoice API server", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
