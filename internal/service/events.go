package service

import (
	"context"

	"murmur/internal/events"
)

// EventPublisher delivers activity events to a user's channel.
type EventPublisher interface {
	Publish(ctx context.Context, recipientID uint, ev events.Event) error
}

// notify publishes ev unless the actor is also the recipient. Failures are
// logged by the publisher and otherwise ignored.
func notify(ctx context.Context, pub EventPublisher, recipientID uint, ev events.Event) {
	if pub == nil || recipientID == ev.ActorID {
		return
	}
	_ = pub.Publish(ctx, recipientID, ev)
}
