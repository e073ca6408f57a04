package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/utils"
)

const profileFeedLimit = 5

type ProfileController struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewProfileController(db *gorm.DB, clock utils.Clock) *ProfileController {
	return &ProfileController{DB: db, Clock: clock}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var user models.User
	if err := pc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var events []models.NewsfeedEvent
	pc.DB.Where("username = ?", user.Username).
		Order("id DESC").
		Limit(profileFeedLimit).
		Find(&events)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"events":  events,
	})
}

// CompleteProfile fills in the extended profile fields and flips is_set. The
// field update and the "joined" feed entry commit in one transaction; a
// repeat call may overwrite the fields but never announces a second join.
func (pc *ProfileController) CompleteProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Age       int    `json:"age"`
		Gender    string `json:"gender"`
		Status    string `json:"status"`
		Country   string `json:"country"`
		About     string `json:"about"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := pc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	firstJoin := !user.IsSet

	tx := pc.DB.Begin()

	updates := map[string]interface{}{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"age":        input.Age,
		"gender":     input.Gender,
		"status":     input.Status,
		"country":    input.Country,
		"about":      input.About,
		"is_set":     true,
	}

	if err := tx.Model(&user).Updates(updates).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	if firstJoin {
		event := models.NewsfeedEvent{
			Event:     "...has joined FaceRate",
			EventType: models.EventTypeJoined,
			Username:  user.Username,
			Image:     user.Image,
			Time:      pc.Clock.Now().UTC().Format(models.EventTimeLayout),
		}

		if err := tx.Create(&event).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record join event", "success": false})
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ShowProfile renders another user's page: their row plus their five most
// recent feed entries.
func (pc *ProfileController) ShowProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	username := c.Param("username")

	var targetUser models.User
	if err := pc.DB.Where("username = ?", username).First(&targetUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var events []models.NewsfeedEvent
	pc.DB.Where("username = ?", targetUser.Username).
		Order("id DESC").
		Limit(profileFeedLimit).
		Find(&events)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    targetUser,
		"events":  events,
		"message": "Do you like this person?",
	})
}
