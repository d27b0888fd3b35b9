package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *zap.Logger, m *metrics.Metrics, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger.Named("http")))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	account := engine.Group("/account")
	account.POST("/register", authHandler.Register)
	account.POST("/login", authHandler.Login)
	account.POST("/signup", authHandler.Signup)
	account.POST("/password/reset", authHandler.RequestReset)
	account.POST("/password/:uid", authHandler.SetPassword)

	profile := account.Group("")
	profile.Use(middleware.AuthRequired(facade))
	profile.POST("/password", authHandler.ChangePassword)
	profile.GET("/address", addressHandler.List)
	profile.POST("/address", addressHandler.Create)
	profile.PUT("/address/:id", addressHandler.Update)
	profile.DELETE("/address/:id", addressHandler.Delete)

	products := engine.Group("/products")
	products.Use(middleware.OptionalAuth(facade))
	products.GET("", catalogHandler.List)
	products.GET("/:id", catalogHandler.Show)

	engine.POST("/orders/pay/:processor/webhook", webhookHandler.Payment)

	orders := engine.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.GET("/:token", orderHandler.Show)
	orders.POST("/pay/:processor", orderHandler.Pay)
	orders.GET("/cancel/:token", orderHandler.Cancel)
	orders.GET("/receive/:token", orderHandler.Receive)
	if cfg != nil && cfg.TestPayEnabled {
		orders.GET("/pay/:token/testpay", orderHandler.TestPay)
	}

	return engine
}
