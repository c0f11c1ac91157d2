// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/middleware"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/router/handler"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ArticleHandler *handler.ArticleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	articleHandler *handler.ArticleHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		articleHandler: params.ArticleHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Article routes require an authenticated caller with the "user" role.
	articleGroup := e.Group("/api/articles")
	articleGroup.Use(r.authMiddleware.Authenticate)                 // Attach identity when a valid token is present
	articleGroup.Use(r.authMiddleware.RequireRole(entity.RoleUser)) // Then, check for the role
	{
		articleGroup.POST("", r.articleHandler.Create)
		articleGroup.GET("", r.articleHandler.List)
		articleGroup.GET("/search", r.articleHandler.SearchByTitle)
		articleGroup.GET("/:id", r.articleHandler.GetByID)
		articleGroup.PUT("/:id", r.articleHandler.Update)
		articleGroup.DELETE("/:id", r.articleHandler.Delete)
	}
}
