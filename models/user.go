package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never exposed
	Contact   string    `gorm:"not null" json:"email"`

	// Profile fields, empty until the one-time profile completion step.
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Status    string `json:"status"`
	Country   string `json:"country"`
	About     string `json:"about"`
	IsSet     bool   `gorm:"default:false" json:"is_set"`

	// Filename of the uploaded profile picture, empty until first upload.
	Image string `json:"image"`

	// Adjusted only by other users' like/dislike actions, unbounded below zero.
	Popularity int `gorm:"default:0" json:"popularity"`
}
