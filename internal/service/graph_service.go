package service

import (
	"context"
	"errors"

	"murmur/internal/events"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	msgSuccess         = "Success!"
	msgAlreadyFollowed = "User is already followed!"
)

// GraphService maintains the follow graph.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	events     EventPublisher
}

// NewGraphService returns a new GraphService.
func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository, pub EventPublisher) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
		events:     pub,
	}
}

// Follow makes actorID follow targetID.
func (s *GraphService) Follow(ctx context.Context, actorID, targetID uint) (msg string, err error) {
	ctx, span := observability.StartSpan(ctx, "GraphService.Follow",
		attribute.Int64("actor.id", int64(actorID)), attribute.Int64("target.id", int64(targetID)))
	defer func() {
		observability.RecordOperation("follow", err)
		observability.EndSpan(span, err)
	}()

	if actorID == targetID {
		return "", models.NewValidationError("You cannot follow yourself")
	}

	if err := s.followRepo.Follow(ctx, actorID, targetID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyFollowing):
			return "", models.NewConflictError(msgAlreadyFollowed)
		case errors.Is(err, repository.ErrUserNotFound):
			return "", models.NewNotFoundError(msgUserNotFound)
		}
		return "", err
	}

	notify(ctx, s.events, targetID, events.Event{Type: events.TypeFollow, ActorID: actorID})
	return msgSuccess, nil
}

// Unfollow removes the edge actorID -> targetID. A missing target changes nothing.
func (s *GraphService) Unfollow(ctx context.Context, actorID, targetID uint) (msg string, err error) {
	ctx, span := observability.StartSpan(ctx, "GraphService.Unfollow",
		attribute.Int64("actor.id", int64(actorID)), attribute.Int64("target.id", int64(targetID)))
	defer func() {
		observability.RecordOperation("unfollow", err)
		observability.EndSpan(span, err)
	}()

	if err := s.followRepo.Unfollow(ctx, actorID, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", models.NewNotFoundError(msgUserNotFound)
		}
		return "", err
	}
	return msgSuccess, nil
}

// Followers lists the users following userID.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID)
}

// Following lists the users userID follows.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID)
}

// Summary re-reads the user from the store rather than trusting token claims.
func (s *GraphService) Summary(ctx context.Context, userID uint) (*models.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.userRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	followings, err := s.userRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserSummary{
		Username:   user.Username,
		Followers:  followers,
		Followings: followings,
	}, nil
}
