package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/utils"
)

type WallController struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewWallController(db *gorm.DB, clock utils.Clock) *WallController {
	return &WallController{DB: db, Clock: clock}
}

func (wc *WallController) CreatePost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Text string `json:"text"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a post.", "success": false})
		return
	}

	var actingUser models.User
	if err := wc.DB.First(&actingUser, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	event := models.NewsfeedEvent{
		Event:     input.Text,
		EventType: models.EventTypePost,
		Username:  actingUser.Username,
		Image:     actingUser.Image,
		Time:      wc.Clock.Now().UTC().Format(models.EventTimeLayout),
	}

	if err := wc.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"event":   event,
	})
}

// GetFeed returns the wall, newest first. type narrows to one event kind,
// limit bounds the page; both optional.
func (wc *WallController) GetFeed(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	eventType := c.DefaultQuery("type", "all")
	switch eventType {
	case "all", models.EventTypePost, models.EventTypeVote, models.EventTypeJoined:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown feed type"})
		return
	}

	query := wc.DB.Order("id DESC")
	if eventType != "all" {
		query = query.Where("event_type = ?", eventType)
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		query = query.Limit(limit)
	}

	var events []models.NewsfeedEvent
	query.Find(&events)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"events":  events,
		"type":    eventType,
	})
}
