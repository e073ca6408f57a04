package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/utils"
)

type DirectoryController struct {
	DB *gorm.DB
}

func NewDirectoryController(db *gorm.DB) *DirectoryController {
	return &DirectoryController{DB: db}
}

// ListUsers returns every user under one of the five directory orderings.
// Popularity ranks highest first with the older account winning ties; the
// rest sort ascending on the named column.
func (dc *DirectoryController) ListUsers(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	sort := c.DefaultQuery("sort", "popularity")

	var order string
	switch sort {
	case "popularity":
		order = "popularity DESC, id ASC"
	case "username":
		order = "username ASC"
	case "name":
		order = "first_name ASC"
	case "age":
		order = "age ASC"
	case "country":
		order = "country ASC"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort order"})
		return
	}

	var users []models.User
	dc.DB.Order(order).Find(&users)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"sort":    sort,
	})
}

// SearchUsers matches a prefix against username, first name or last name,
// the way the directory search box does.
func (dc *DirectoryController) SearchUsers(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	searchPattern := query + "%"

	var users []models.User
	dc.DB.Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
		searchPattern, searchPattern, searchPattern).
		Order("id ASC").
		Find(&users)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
		"query":   query,
	})
}
