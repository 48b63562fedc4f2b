package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tharun/campusvote/internal/app/controllers"
	"github.com/tharun/campusvote/internal/app/models/dto"
	"github.com/tharun/campusvote/internal/middleware"
	"github.com/tharun/campusvote/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	votingController *controllers.VotingController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public voting routes ---
	students := v1.Group("/students")
	{
		students.POST("", votingController.RegisterStudent)
		students.GET("/:registerNumber/voted", votingController.HasVoted)
	}

	v1.POST("/votes", votingController.CastVote)
	v1.GET("/results", votingController.Results)

	// --- Admin routes ---
	admin := v1.Group("/admin")
	{
		admin.POST("/login", adminController.Login)

		adminProtected := admin.Group("")
		adminProtected.Use(authMiddleware.JWTAuth())
		adminProtected.Use(authMiddleware.RoleRequired(auth.RoleAdmin))
		{
			adminProtected.GET("/students", adminController.ListStudents)
			adminProtected.GET("/ballots", adminController.ListBallots)
			adminProtected.GET("/turnout", adminController.Turnout)
			adminProtected.GET("/schedule", adminController.GetSchedule)
			adminProtected.PUT("/schedule", adminController.SetSchedule)
			adminProtected.PUT("/voting", adminController.SetVotingEnabled)
			adminProtected.GET("/winner", adminController.DeclareWinner)
			adminProtected.POST("/reset", adminController.Reset)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
