package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// ListByUser returns the user's posts newest first.
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	// DeleteOwned soft-deletes the post when userID created it, otherwise ErrPostNotFound.
	DeleteOwned(ctx context.Context, postID, userID uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&models.Post{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Like records the like edge and bumps the counter in one transaction.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		if existing > 0 {
			return ErrAlreadyLiked
		}

		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrAlreadyLiked
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// Unlike removes the like edge and decrements the counter, never below zero.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotLiked
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ? AND likes > 0", postID).
			UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func postExists(tx *gorm.DB, id uint) error {
	var post models.Post
	if err := tx.Select("id").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return models.NewInternalError(err)
	}
	return nil
}
