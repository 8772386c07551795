package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"murmur/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// errVersionMoved aborts a cache fill whose source data changed mid-fetch.
var errVersionMoved = errors.New("cache version moved during fetch")

// Aside tries Redis first; on a miss it calls fetch (which must populate dest)
// and stores the result with ttl. Cache errors degrade to a plain fetch.
//
// A non-empty versionKey guards the fill: it is written only if versionKey
// holds the same value after fetch as before it. Writers bump versionKey
// (see Bump) so a read that raced a write is never cached.
func Aside(ctx context.Context, key, versionKey string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		observability.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		observability.CacheLookups.WithLabelValues("hit").Inc()
		return nil
	}
	observability.CacheLookups.WithLabelValues("miss").Inc()

	rdb := client
	var version string
	if rdb != nil && versionKey != "" {
		version, err = rdb.Get(ctx, versionKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			// Without a known version the fill cannot be checked, so skip it.
			rdb = nil
		}
	}

	if err := fetch(); err != nil {
		return err
	}
	if rdb == nil {
		return nil
	}

	if versionKey == "" {
		err = SetJSON(ctx, key, dest, ttl)
	} else {
		err = setIfVersion(ctx, rdb, key, versionKey, version, dest, ttl)
	}
	switch {
	case errors.Is(err, errVersionMoved), errors.Is(err, redis.TxFailedErr):
		observability.Logger.DebugContext(ctx, "stale cache fill skipped", slog.String("key", key))
	case err != nil:
		observability.Logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

func setIfVersion(ctx context.Context, rdb *redis.Client, key, versionKey, want string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, versionKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != want {
			return errVersionMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, versionKey)
}
