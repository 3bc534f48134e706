package handler

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"checkout-mini-demo/internal/config"
)

func NewRouter(cfg config.Config, h *CheckoutHandler) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if slices.Contains(cfg.AllowedOrigins, "*") {
		// gin-contrib/cors forbids credentials together with a wildcard.
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Signature")
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/product", h.Product)
	api.POST("/payments/session", h.CreateSession)
	api.POST("/payments/webhook", h.Webhook)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:order_id", h.GetOrder)

	if !cfg.Production() {
		api.POST("/dev/simulate-webhook", h.SimulateWebhook)
	}

	return r
}
