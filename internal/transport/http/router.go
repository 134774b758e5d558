package rest

import (
	"net/http"
	"path/filepath"

	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — маршруты API и служебные эндпоинты.
// otelServiceName == "" — без otelgin.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(h.authenticate())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.POST("/products", requireAdmin(), h.createProduct)
		api.PUT("/products/:id", requireAdmin(), h.updateProduct)
		api.DELETE("/products/:id", requireAdmin(), h.deleteProduct)

		api.POST("/orders", h.createOrder)
		api.GET("/orders", requireUser(), h.listMyOrders)
		api.GET("/orders/:orderId", h.getOrder)

		api.GET("/discounts/:code", h.getDiscount)

		fav := api.Group("/favorites", requireUser())
		fav.GET("", h.listFavorites)
		fav.PUT("/:productId", h.addFavorite)
		fav.DELETE("/:productId", h.removeFavorite)

		admin := api.Group("/admin", requireAdmin())
		admin.GET("/orders", h.adminListOrders)
		admin.PATCH("/orders/:orderId/status", h.adminUpdateStatus)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}
