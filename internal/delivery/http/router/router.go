// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware Fx injects into the router.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	postHandler    *handler.PostHandler
	commentHandler *handler.CommentHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		postHandler:    params.PostHandler,
		commentHandler: params.CommentHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// User routes: registration and login are public
	userGroup := e.Group("/users")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)
	}

	// Post routes: reading is public, writing requires authentication
	postGroup := e.Group("/posts")
	{
		postGroup.GET("/", r.postHandler.ListAll)
		postGroup.GET("/my-posts", r.postHandler.ListOwn, r.authMiddleware.Authenticate)
		postGroup.POST("/", r.postHandler.Create, r.authMiddleware.Authenticate)
		postGroup.PUT("/:id", r.postHandler.Update, r.authMiddleware.Authenticate)
		postGroup.DELETE("/:id", r.postHandler.Delete, r.authMiddleware.Authenticate)
	}

	// Comment routes: reading is public, writing requires authentication
	commentGroup := e.Group("/comments")
	{
		commentGroup.GET("/all_comments/", r.commentHandler.ListAll)
		commentGroup.POST("/", r.commentHandler.Create, r.authMiddleware.Authenticate)
		commentGroup.PUT("/:id", r.commentHandler.Update, r.authMiddleware.Authenticate)
		commentGroup.DELETE("/:id", r.commentHandler.Delete, r.authMiddleware.Authenticate)
	}
}
