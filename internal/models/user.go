// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Followers, followings and liked posts
// live in the follows and likes edge tables.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Mail      string    `gorm:"uniqueIndex;not null" json:"mail"`
	PassHash  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the payload returned by POST /api/user.
type UserSummary struct {
	Username   string `json:"username"`
	Followers  int64  `json:"followers"`
	Followings int64  `json:"followings"`
}
