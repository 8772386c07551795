// Package events publishes social activity to per-user Redis channels.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"murmur/internal/cache"
	"murmur/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event types.
const (
	TypeFollow  = "follow"
	TypeLike    = "like"
	TypeComment = "comment"
)

// Event is the JSON payload delivered on events:user:<recipient>.
type Event struct {
	Type      string    `json:"type"`
	ActorID   uint      `json:"actor_id"`
	PostID    uint      `json:"post_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher provides helpers to publish events into Redis channels
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a Publisher. A nil client makes every publish a no-op.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish sends ev to recipientID's channel. Delivery is best-effort: failures
// are logged and returned but never roll back the mutation that caused them.
func (p *Publisher) Publish(ctx context.Context, recipientID uint, ev Event) error {
	if p == nil || p.rdb == nil {
		return nil
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.rdb.Publish(ctx, cache.UserEventsChannel(recipientID), payload).Err(); err != nil {
		observability.Logger.WarnContext(ctx, "event publish failed",
			slog.String("type", ev.Type),
			slog.Uint64("recipient_id", uint64(recipientID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// Subscribe delivers events addressed to userIDs, or to every user when no id
// is given, until ctx is cancelled. onEvent runs on a single goroutine.
func (p *Publisher) Subscribe(ctx context.Context, onEvent func(recipientID uint, ev Event), userIDs ...uint) error {
	if p == nil || p.rdb == nil {
		return nil
	}

	var sub *redis.PubSub
	if len(userIDs) == 0 {
		sub = p.rdb.PSubscribe(ctx, cache.UserEventsChannelPattern)
	} else {
		channels := make([]string, len(userIDs))
		for i, id := range userIDs {
			channels[i] = cache.UserEventsChannel(id)
		}
		sub = p.rdb.Subscribe(ctx, channels...)
	}
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				p.dispatch(msg, onEvent)
			}
		}
	}()

	return nil
}

func (p *Publisher) dispatch(msg *redis.Message, onEvent func(uint, Event)) {
	recipientID, ok := cache.ParseUserEventsChannel(msg.Channel)
	if !ok {
		return
	}
	var ev Event
	if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
		observability.Logger.Warn("dropping malformed event",
			slog.String("channel", msg.Channel), slog.String("error", err.Error()))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			observability.Logger.Error("panic in event subscriber",
				slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
		}
	}()
	onEvent(recipientID, ev)
}
