package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/face-rate/api-go/controllers"
)

func SetupWallRoutes(protected *gin.RouterGroup, wallController *controllers.WallController) {
	protected.GET("/feed", wallController.GetFeed)
	protected.POST("/posts", wallController.CreatePost)
}
