// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jobhub/config"
	"jobhub/internal/delivery/api/middleware"
	"jobhub/internal/delivery/api/router/handler"
	"jobhub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	CompanyHandler     *handler.CompanyHandler
	JobHandler         *handler.JobHandler
	ApplicationHandler *handler.ApplicationHandler
	AdminHandler       *handler.AdminHandler
	AuthMiddleware     *middleware.AuthMiddleware
	Config             *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	companyHandler     *handler.CompanyHandler
	jobHandler         *handler.JobHandler
	applicationHandler *handler.ApplicationHandler
	adminHandler       *handler.AdminHandler
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		userHandler:        params.UserHandler,
		companyHandler:     params.CompanyHandler,
		jobHandler:         params.JobHandler,
		applicationHandler: params.ApplicationHandler,
		adminHandler:       params.AdminHandler,
		authMiddleware:     params.AuthMiddleware,
		config:             params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticated := r.authMiddleware.Authenticate

	// Auth routes
	authGroup := api.Group("/auth")
	{
		credentialLimiter := middleware.NewCredentialRateLimiter(r.config.Auth)
		authGroup.POST("/register", r.authHandler.Register, credentialLimiter)
		authGroup.POST("/login", r.authHandler.Login, credentialLimiter)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Current user routes
	usersGroup := api.Group("/users/me", authenticated)
	{
		usersGroup.GET("", r.userHandler.GetProfile)
		usersGroup.PUT("", r.userHandler.UpdateProfile)
		usersGroup.DELETE("", r.userHandler.DeleteAccount)
		usersGroup.POST("/profile-picture/upload-url", r.userHandler.RequestProfilePictureUpload)
		usersGroup.PUT("/profile-picture", r.userHandler.UpdateProfilePicture)
		usersGroup.POST("/resume/upload-url", r.userHandler.RequestResumeUpload)
		usersGroup.PUT("/resume", r.userHandler.UpdateResume)
	}

	// Company routes: reads are public
	companiesGroup := api.Group("/companies")
	{
		companiesGroup.GET("", r.companyHandler.List)
		companiesGroup.GET("/:id", r.companyHandler.Get)
		companiesGroup.POST("", r.companyHandler.Create, authenticated)
		companiesGroup.PUT("/:id", r.companyHandler.Update, authenticated)
	}

	// Job routes: search and detail are public
	jobsGroup := api.Group("/jobs")
	{
		jobsGroup.GET("", r.jobHandler.Search)
		jobsGroup.GET("/:id", r.jobHandler.Get)
		jobsGroup.POST("", r.jobHandler.Create, authenticated)
		jobsGroup.PUT("/:id", r.jobHandler.Update, authenticated)
		jobsGroup.DELETE("/:id", r.jobHandler.Delete, authenticated)
		jobsGroup.POST("/:id/apply", r.applicationHandler.Apply, authenticated)
		jobsGroup.GET("/:id/applications", r.applicationHandler.ListForJob, authenticated)
	}

	applicationsGroup := api.Group("/applications", authenticated)
	{
		applicationsGroup.GET("/me", r.applicationHandler.ListMine)
		applicationsGroup.GET("/:id", r.applicationHandler.Get)
	}

	// Admin routes that require the ADMIN role
	adminGroup := api.Group("/admin", authenticated, r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)
		adminGroup.DELETE("/jobs/:id", r.adminHandler.DeleteJob)
	}
}
