package server

import (
	"context"
	"log/slog"

	"murmur/internal/events"
	"murmur/internal/observability"
)

// StartActivityLog writes one log line per published social event until ctx
// is cancelled. It is a no-op without Redis.
func (s *Server) StartActivityLog(ctx context.Context) error {
	return s.publisher.Subscribe(ctx, func(recipientID uint, ev events.Event) {
		attrs := []any{
			slog.String("type", ev.Type),
			slog.Uint64("recipient_id", uint64(recipientID)),
			slog.Uint64("actor_id", uint64(ev.ActorID)),
		}
		if ev.PostID != 0 {
			attrs = append(attrs, slog.Uint64("post_id", uint64(ev.PostID)))
		}
		observability.Logger.Info("activity", attrs...)
	})
}
