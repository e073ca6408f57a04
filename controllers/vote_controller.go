package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/utils"
)

type VoteController struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewVoteController(db *gorm.DB, clock utils.Clock) *VoteController {
	return &VoteController{DB: db, Clock: clock}
}

func (vc *VoteController) Like(c *gin.Context) {
	vc.vote(c, 1, "...likes ", "You like this person :)")
}

func (vc *VoteController) Dislike(c *gin.Context) {
	vc.vote(c, -1, "...dislikes ", "You dislike this person :(")
}

// vote applies one like/dislike: the counter update and the feed entry
// commit together or not at all. The increment runs inside the database so
// concurrent votes on the same target never lose updates.
func (vc *VoteController) vote(c *gin.Context, delta int, verb, message string) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetUsername := c.Param("username")

	var targetUser models.User
	if err := vc.DB.Where("username = ?", targetUsername).First(&targetUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Voting on your own profile is off the table.
	if targetUser.ID == currentUser.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot vote for yourself"})
		return
	}

	var actingUser models.User
	if err := vc.DB.First(&actingUser, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	tx := vc.DB.Begin()

	if err := tx.Model(&models.User{}).
		Where("username = ?", targetUser.Username).
		Update("popularity", gorm.Expr("popularity + ?", delta)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	event := models.NewsfeedEvent{
		Event:     verb + targetUser.Username,
		EventType: models.EventTypeVote,
		Username:  actingUser.Username,
		Target:    targetUser.Username,
		Image:     actingUser.Image,
		Time:      vc.Clock.Now().UTC().Format(models.EventTimeLayout),
	}

	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	tx.Commit()

	vc.DB.Where("username = ?", targetUser.Username).First(&targetUser)

	var events []models.NewsfeedEvent
	vc.DB.Where("username = ?", targetUser.Username).
		Order("id DESC").
		Limit(profileFeedLimit).
		Find(&events)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    targetUser,
		"events":  events,
		"message": message,
	})
}
