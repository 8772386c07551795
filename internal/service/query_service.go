package service

import (
	"context"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const msgNoPosts = "No posts"

// QueryService serves read-only post views.
type QueryService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewQueryService returns a new QueryService.
func NewQueryService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *QueryService {
	return &QueryService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// GetPost returns the like count and comments of a post, cache-aside on
// post:<id>. Fills that overlap a mutation of the post are not cached.
func (s *QueryService) GetPost(ctx context.Context, postID uint) (detail *models.PostDetail, err error) {
	ctx, span := observability.StartSpan(ctx, "QueryService.GetPost", attribute.Int64("post.id", int64(postID)))
	defer func() { observability.EndSpan(span, err) }()

	var out models.PostDetail
	err = cache.Aside(ctx, cache.PostKey(postID), cache.PostVersionKey(postID), &out, cache.PostTTL, func() error {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		comments, err := s.commentRepo.ListByPost(ctx, postID)
		if err != nil {
			return err
		}
		out = models.PostDetail{
			Likes:         post.Likes,
			Comments:      commentViews(comments),
			CommentsCount: len(comments),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllPostsByUser returns the user's posts newest first with their comments.
func (s *QueryService) GetAllPostsByUser(ctx context.Context, userID uint) (out []models.PostSummary, err error) {
	ctx, span := observability.StartSpan(ctx, "QueryService.GetAllPostsByUser", attribute.Int64("user.id", int64(userID)))
	defer func() { observability.EndSpan(span, err) }()

	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError(msgNoPosts)
	}

	return orderedMap(ctx, posts, maxResolveWorkers, func(ctx context.Context, p models.Post) (models.PostSummary, error) {
		comments, err := s.commentRepo.ListByPost(ctx, p.ID)
		if err != nil {
			return models.PostSummary{}, err
		}
		return models.PostSummary{
			ID:        p.ID,
			Title:     p.Title,
			Desc:      p.Description,
			CreatedAt: p.CreatedAt,
			Comments:  commentViews(comments),
			Likes:     p.Likes,
		}, nil
	})
}

func commentViews(comments []models.Comment) []models.CommentView {
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View())
	}
	return views
}
