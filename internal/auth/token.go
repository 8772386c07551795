// Package auth issues and verifies signed session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"murmur/internal/cache"
	"murmur/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	Issuer   = "murmur-api"
	Audience = "murmur-client"
)

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID    uint
	Mail      string
	Username  string
	JTI       string
	ExpiresAt time.Time
}

// TokenManager signs HS256 tokens and checks them against the revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	now    func() time.Time
}

// NewTokenManager returns a manager. rdb may be nil, in which case revocation is unavailable.
func NewTokenManager(secret string, ttl time.Duration, rdb *redis.Client) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		redis:  rdb,
		now:    time.Now,
	}
}

// Issue signs a token for user, valid for the configured TTL.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := m.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"mail":     user.Mail,
		"username": user.Username,
		"iss":      Issuer,
		"aud":      Audience,
		"exp":      now.Add(m.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses tokenString and returns its claims. Every failure is an
// unauthorized AppError; a Redis outage does not reject otherwise valid tokens.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.NewUnauthorizedError("Token expired")
		}
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, models.NewUnauthorizedError("Invalid user ID in token")
	}

	claims := &Claims{UserID: uint(userID)}
	claims.Mail, _ = mapClaims["mail"].(string)
	claims.Username, _ = mapClaims["username"].(string)
	claims.JTI, _ = mapClaims["jti"].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	if claims.JTI != "" && m.redis != nil {
		revoked, err := m.redis.Exists(ctx, cache.BlacklistKey(claims.JTI)).Result()
		if err == nil && revoked > 0 {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	return claims, nil
}

// Revoke blacklists the token's jti until the token would have expired anyway.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.JTI == "" {
		return models.NewValidationError("Token cannot be revoked")
	}
	if m.redis == nil {
		return models.NewInternalError(errors.New("token revocation store unavailable"))
	}

	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	if err := m.redis.Set(ctx, cache.BlacklistKey(claims.JTI), "1", ttl).Err(); err != nil {
		return models.NewInternalError(fmt.Errorf("revoke token: %w", err))
	}
	return nil
}
