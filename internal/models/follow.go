package models

import "time"

// Follow is a directed edge: FollowerID follows FolloweeID.
// A single row backs both the follower's following set and the
// followee's followers set.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index:idx_follows_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// FollowEntry is one row of a followers/following listing.
type FollowEntry struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
