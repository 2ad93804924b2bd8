package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tiendago/orders/internal/adapter/config"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	webhookSecret string,
	tokenService port.TokenService,
	shopperHandler *ShopperHandler,
	orderHandler *OrderHandler,
	webhookHandler *WebhookHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	h := NewHandler(logger)

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		shopper := api.Group("/shopper")
		{
			shopper.POST("/register", shopperHandler.RegisterShopper)
			shopper.POST("/login", shopperHandler.LoginShopper)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService, h))
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrdersByShopper)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/webhook", signatureCheck(webhookSecret, h), webhookHandler.HandleNotification)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
