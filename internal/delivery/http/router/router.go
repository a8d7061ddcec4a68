// Package router contains routing for the HTTP delivery.
package router

import (
	"productsmanager/internal/delivery/http/middleware"
	"productsmanager/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me)
	}

	// Product routes need a token issued to the current session identity.
	productGroup := e.Group("/products")
	productGroup.Use(r.authMiddleware.Authenticate)
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.POST("", r.productHandler.Create)
		productGroup.PUT("/:id", r.productHandler.Update)
		productGroup.DELETE("/:id", r.productHandler.Delete)
		productGroup.POST("/export", r.productHandler.Export)
	}
}
