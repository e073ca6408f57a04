package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/storage"
	"github.com/face-rate/api-go/utils"
)

type UploadController struct {
	DB    *gorm.DB
	Media storage.MediaStore
}

func NewUploadController(db *gorm.DB, media storage.MediaStore) *UploadController {
	return &UploadController{DB: db, Media: media}
}

// UploadImage stores the profile picture as "{username}.jpg", overwriting
// any previous upload. The image reference only changes after the store
// accepts the object, so a failed save never leaves a dangling filename.
func (uc *UploadController) UploadImage(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No file selected: the route still answers with the current profile.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read uploaded file", "success": false})
		return
	}
	defer file.Close()

	filename := user.Username + ".jpg"

	if err := uc.Media.Save(c.Request.Context(), filename, "image/jpeg", file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image", "success": false})
		return
	}

	if err := uc.DB.Model(&user).Update("image", filename).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile image", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"image":   filename,
	})
}
