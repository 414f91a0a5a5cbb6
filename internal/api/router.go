package api

import (
	"github.com/gin-gonic/gin"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/handler"
	"github.com/petmily-app/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Signup and authentication (Public)
	users := r.Group("/api/v1/users")
	{
		users.POST("", authHandler.Register)
		users.POST("/verification", authHandler.RequestVerification)
		users.POST("/verify", authHandler.VerifyEmail)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh", authHandler.RefreshToken)
		users.POST("/logout", authHandler.Logout)
	}

	// Community board (reads are public)
	r.GET("/api/v1/posts", postHandler.List)
	r.GET("/api/v1/posts/:postId", postHandler.Get)
	r.GET("/api/v1/posts/:postId/comments", postHandler.ListComments)

	// Protected routes
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/users/me", userHandler.GetMe)
		api.PUT("/users/me", userHandler.UpdateMe)
		api.POST("/users/vet", userHandler.ApplyAsVet)

		api.POST("/posts", postHandler.Create)
		api.PUT("/posts/:postId", postHandler.Update)
		api.DELETE("/posts/:postId", postHandler.Delete)
		api.POST("/posts/report", postHandler.Report)
		api.POST("/posts/:postId/comments", postHandler.CreateComment)
		api.POST("/comments/report", postHandler.ReportComment)
	}

	// Admin console
	admins := r.Group("/api/v1/admins")
	admins.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(models.RoleAdmin))
	{
		admins.GET("/vet-requests", adminHandler.ListVetRequests)
		admins.PUT("/vet-requests/status", adminHandler.ReviewVetRequest)
		admins.GET("/users", adminHandler.ListUsers)
		admins.PUT("/users/status", adminHandler.ModerateUser)
		admins.GET("/posts", adminHandler.ListReportedPosts)
		admins.GET("/comments", adminHandler.ListReportedComments)
	}

	return r
}
