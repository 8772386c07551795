package models

import "time"

// Comment is a comment on a post. It is never edited once written.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Text      string    `gorm:"column:comment;type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the public projection of a comment.
type CommentView struct {
	Comment   string `json:"comment"`
	CommentBy string `json:"commentBy"`
}

// View projects the comment; User must be preloaded for CommentBy.
func (c Comment) View() CommentView {
	return CommentView{Comment: c.Text, CommentBy: c.User.Mail}
}
