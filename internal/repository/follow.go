package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// FollowRepository persists the directed follow graph.
type FollowRepository interface {
	// Follow inserts the edge follower -> followee. Returns ErrUserNotFound or
	// ErrAlreadyFollowing without writing anything.
	Follow(ctx context.Context, followerID, followeeID uint) error
	// Unfollow removes the edge if present. Returns ErrUserNotFound, with no
	// mutation, when the followee does not exist.
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	ListFollowers(ctx context.Context, userID uint) ([]models.FollowEntry, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.FollowEntry, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Count(&existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		if existing > 0 {
			return ErrAlreadyFollowing
		}

		if err := userExists(tx, followeeID); err != nil {
			return err
		}

		edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(edge).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrAlreadyFollowing
			}
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, followeeID); err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	entries := []models.FollowEntry{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username").
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.followee_id = ?", userID).
		Order("f.id").
		Scan(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	entries := []models.FollowEntry{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username").
		Joins("JOIN follows f ON f.followee_id = users.id").
		Where("f.follower_id = ?", userID).
		Order("f.id").
		Scan(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func userExists(tx *gorm.DB, id uint) error {
	var user models.User
	if err := tx.Select("id").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return models.NewInternalError(err)
	}
	return nil
}
