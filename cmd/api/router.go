package main

import (
	"net/http"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	sessionConfig := middleware.DefaultSessionMiddlewareConfig(c.Sessions)
	sessionConfig.CookieName = c.Config.Session.CookieName
	sessionConfig.CookieDomain = c.Config.Session.CookieDomain
	sessionConfig.CookieSecure = c.Config.Session.CookieSecure

	// Every device-scoped route resolves the session first, then the identity
	device := []gin.HandlerFunc{
		middleware.SessionMiddleware(sessionConfig),
		middleware.OptionalAuthMiddleware(c.JWTManager),
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupAuthRoutes(v1, sessionConfig, device, c)
		setupCartRoutes(v1.Group("", device...), c)
		setupOrderRoutes(v1.Group("", device...), c)
	}

	return router
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.CatalogHandler.ListProducts)
		products.GET("/:id", c.CatalogHandler.GetProduct)
	}
}

// Login only needs the device; the handler sets the new identity itself
func setupAuthRoutes(v1 *gin.RouterGroup, sessionConfig middleware.SessionMiddlewareConfig, device []gin.HandlerFunc, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.SessionMiddleware(sessionConfig), c.AuthHandler.Login)
		auth.Group("", device...).POST("/logout", c.AuthHandler.Logout)
	}
}

func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/me/cart")
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.POST("/items/:id/decrease", c.CartHandler.DecreaseItem)
		cart.DELETE("/items/:id", c.CartHandler.RemoveItem)
		cart.PUT("/discount", c.CartHandler.SetDiscount)
	}
}

func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authed := v1.Group("", middleware.RequireAuth())
	{
		authed.POST("/checkout", c.OrderHandler.Checkout)
		authed.GET("/me/orders", c.OrderHandler.MyOrders)
		authed.GET("/admin/orders", middleware.StaffMiddleware(), c.OrderHandler.AllOrders)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		code, status := c.HealthCheck(ctx.Request.Context())
		if code != http.StatusOK {
			response.ErrorWithDetails(ctx, code, "SERVICE_UNAVAILABLE", "Storage unavailable", status)
			return
		}
		response.Success(ctx, http.StatusOK, "OK", gin.H{
			"status":   "healthy",
			"version":  c.Config.App.Version,
			"sessions": c.Sessions.Len(),
			"products": c.Catalog.Len(),
			"checks":   status,
		})
	}
}
