package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"murmur/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	PostKeyPrefix      = "post:%d"
	PostVersionPrefix  = "post:%d:ver"
	BlacklistKeyPrefix = "blacklist:%s"
	UserEventsPrefix   = "events:user:%d"

	UserEventsChannelPattern = "events:user:*"
)

const PostTTL = 30 * time.Minute

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostVersionKey(postID uint) string {
	return fmt.Sprintf(PostVersionPrefix, postID)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(BlacklistKeyPrefix, jti)
}

func UserEventsChannel(userID uint) string {
	return fmt.Sprintf(UserEventsPrefix, userID)
}

// ParseUserEventsChannel extracts the recipient id from an events channel name.
func ParseUserEventsChannel(channel string) (uint, bool) {
	var id uint
	if _, err := fmt.Sscanf(channel, UserEventsPrefix, &id); err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Bump advances versionKey and drops key in one transaction, so any fill
// that started before the bump is discarded by Aside.
func Bump(ctx context.Context, key, versionKey string) {
	if client == nil {
		return
	}
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, 2*PostTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		observability.Logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Bump(ctx, PostKey(postID), PostVersionKey(postID))
}
