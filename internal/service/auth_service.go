// Package service contains the business logic behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"murmur/internal/auth"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
	"murmur/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	msgRegistered   = "Successfully registered!"
	msgUserNotFound = "User not found!"
)

// TokenService issues and revokes session tokens.
type TokenService interface {
	Issue(user *models.User) (string, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	hashCost int
}

// RegisterInput carries the registration body.
type RegisterInput struct {
	Username string
	Mail     string
	Password string
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register validates the input and stores a new user. Returns the acknowledgment text.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	mail := validation.NormalizeEmail(in.Mail)
	if err := validation.ValidateUsername(in.Username); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(mail); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Mail:     mail,
		PassHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		observability.RecordOperation("register", err)
		return "", err
	}

	observability.RecordOperation("register", nil)
	observability.Logger.InfoContext(ctx, "user registered", slog.Uint64("user_id", uint64(user.ID)))
	return msgRegistered, nil
}

// Authenticate checks the credentials and returns a signed token. Unknown mail
// and wrong password produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, mail, password string) (string, error) {
	user, err := s.userRepo.GetByMail(ctx, validation.NormalizeEmail(mail))
	if err != nil {
		return "", err
	}
	if user == nil {
		observability.AuthAttempts.WithLabelValues("unknown_user").Inc()
		return "", models.NewUnauthorizedError(msgUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			observability.Logger.WarnContext(ctx, "stored password hash unusable",
				slog.Uint64("user_id", uint64(user.ID)), slog.String("error", err.Error()))
		}
		observability.AuthAttempts.WithLabelValues("bad_password").Inc()
		return "", models.NewUnauthorizedError(msgUserNotFound)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	observability.AuthAttempts.WithLabelValues("success").Inc()
	return token, nil
}

// Logout revokes the presented token.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.tokens.Revoke(ctx, claims)
}
