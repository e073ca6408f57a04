package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/face-rate/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, directoryController *controllers.DirectoryController, profileController *controllers.ProfileController, voteController *controllers.VoteController) {
	users := protected.Group("/users")
	{
		// Directory views
		users.GET("", directoryController.ListUsers)
		users.GET("/search", directoryController.SearchUsers)

		// Other users' profiles
		users.GET("/:username", profileController.ShowProfile)

		// Votes
		users.POST("/:username/like", voteController.Like)
		users.POST("/:username/dislike", voteController.Dislike)
	}
}
