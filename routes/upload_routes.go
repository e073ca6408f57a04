package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/face-rate/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	protected.POST("/profile/image", uploadController.UploadImage)
}
