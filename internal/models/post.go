package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post created by a user.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"desc"`
	Likes       int            `gorm:"not null;default:0" json:"likes"`
	Comments    []Comment      `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreatedPost is the payload returned by POST /api/posts.
type CreatedPost struct {
	PostID      uint   `json:"postId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedTime int64  `json:"createdTime"`
}

// PostDetail is the payload returned by GET /api/posts/:postId.
type PostDetail struct {
	Likes         int           `json:"likes"`
	Comments      []CommentView `json:"comments"`
	CommentsCount int           `json:"commentsCount"`
}

// PostSummary is one element of GET /api/all_posts.
type PostSummary struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Desc      string        `json:"desc"`
	CreatedAt time.Time     `json:"created_at"`
	Comments  []CommentView `json:"comments"`
	Likes     int           `json:"likes"`
}
