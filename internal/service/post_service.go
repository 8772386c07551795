package service

import (
	"context"
	"errors"
	"log/slog"

	"murmur/internal/cache"
	"murmur/internal/events"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
	"murmur/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const (
	msgPostDeleted      = "Deleted the post!"
	msgDeleteForbidden  = "Post with the given id doesn't exists or user is not authorized to delete the post!"
	msgPostNotFound     = "Post not found!"
	msgAlreadyLiked     = "Post is already liked by the user."
	msgLiked            = "Liked the post!"
	msgNotLiked         = "The user didn't like the post"
	msgUnliked          = "Post unliked!"
	msgPostDoesNotExist = "Post doesn't exists!"
	msgCommented        = "Posted comment"
)

// PostService handles post creation, deletion, likes and comments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	events      EventPublisher
}

// CreatePostInput carries a new post.
type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, pub EventPublisher) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		events:      pub,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.CreatedPost, error) {
	if err := validation.ValidatePost(in.Title, in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
	}
	err := s.postRepo.Create(ctx, post)
	observability.RecordOperation("create_post", err)
	if err != nil {
		return nil, err
	}

	return &models.CreatedPost{
		PostID:      post.ID,
		Title:       post.Title,
		Description: post.Description,
		CreatedTime: post.CreatedAt.UnixMilli(),
	}, nil
}

// DeletePost removes a post created by userID. Missing posts and posts owned
// by someone else are reported identically.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) (string, error) {
	err := s.postRepo.DeleteOwned(ctx, postID, userID)
	observability.RecordOperation("delete_post", err)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return "", models.NewNotFoundError(msgDeleteForbidden)
		}
		return "", err
	}

	cache.InvalidatePost(ctx, postID)
	return msgPostDeleted, nil
}

func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (msg string, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.LikePost",
		attribute.Int64("user.id", int64(userID)), attribute.Int64("post.id", int64(postID)))
	defer func() {
		observability.RecordOperation("like", err)
		observability.EndSpan(span, err)
	}()

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			return "", models.NewNotFoundError(msgPostNotFound)
		case errors.Is(err, repository.ErrAlreadyLiked):
			return "", models.NewConflictError(msgAlreadyLiked)
		}
		return "", err
	}

	cache.InvalidatePost(ctx, postID)
	s.notifyOwner(ctx, postID, events.Event{Type: events.TypeLike, ActorID: userID, PostID: postID})
	return msgLiked, nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (msg string, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.UnlikePost",
		attribute.Int64("user.id", int64(userID)), attribute.Int64("post.id", int64(postID)))
	defer func() {
		observability.RecordOperation("unlike", err)
		observability.EndSpan(span, err)
	}()

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		if errors.Is(err, repository.ErrNotLiked) {
			return "", models.NewConflictError(msgNotLiked)
		}
		return "", err
	}

	cache.InvalidatePost(ctx, postID)
	return msgUnliked, nil
}

func (s *PostService) AddComment(ctx context.Context, postID, userID uint, text string) (msg string, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.AddComment",
		attribute.Int64("user.id", int64(userID)), attribute.Int64("post.id", int64(postID)))
	defer func() {
		observability.RecordOperation("comment", err)
		observability.EndSpan(span, err)
	}()

	// A missing post wins over a bad comment body.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return "", models.NewNotFoundError(msgPostDoesNotExist)
		}
		return "", err
	}
	if err := validation.ValidateComment(text); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Text: text}
	if err := s.commentRepo.CreateForPost(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return "", models.NewNotFoundError(msgPostDoesNotExist)
		}
		return "", err
	}

	cache.InvalidatePost(ctx, postID)
	s.notifyOwner(ctx, postID, events.Event{Type: events.TypeComment, ActorID: userID, PostID: postID})
	return msgCommented, nil
}

func (s *PostService) notifyOwner(ctx context.Context, postID uint, ev events.Event) {
	if s.events == nil {
		return
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		observability.Logger.WarnContext(ctx, "skipping event, post lookup failed",
			slog.Uint64("post_id", uint64(postID)), slog.String("error", err.Error()))
		return
	}
	notify(ctx, s.events, post.UserID, ev)
}
