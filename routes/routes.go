package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/controllers"
	"github.com/face-rate/api-go/middleware"
	"github.com/face-rate/api-go/storage"
	"github.com/face-rate/api-go/utils"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, media storage.MediaStore, clock utils.Clock) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	profileController := controllers.NewProfileController(db, clock)
	voteController := controllers.NewVoteController(db, clock)
	wallController := controllers.NewWallController(db, clock)
	directoryController := controllers.NewDirectoryController(db)
	uploadController := controllers.NewUploadController(db, media)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)

		// Own profile
		protected.GET("/profile", profileController.GetProfile)
		protected.PUT("/profile", profileController.CompleteProfile)

		SetupUserRoutes(protected, directoryController, profileController, voteController)
		SetupWallRoutes(protected, wallController)
		SetupUploadRoutes(protected, uploadController)
	}
}
