package paginator

import (
	"context"
	"log/slog"

	"github.com/m3rciful/tgpaginator/core/logger"
)

// CallbackEvent is an inline button activation.
type CallbackEvent struct {
	UserID    int64
	ChatID    int64
	MessageID int
	Data      string
}

// Router resolves navigation clicks to registered paginators.
type Router struct {
	reg *Registry
}

// NewRouter creates a router over reg.
func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// Registry returns the registry the router resolves against.
func (rt *Router) Registry() *Registry {
	return rt.reg
}

// Route looks up the paginator that rendered the event's message and opens the
// page encoded in the event data. A missing paginator fails with *NotFoundError
// before any outbound call.
func (rt *Router) Route(ctx context.Context, m Messenger, ev CallbackEvent) (MessageRef, error) {
	p, err := rt.reg.Lookup(Key{ChatID: ev.ChatID, MessageID: ev.MessageID})
	if err != nil {
		logger.Warn(ctx, logComponent, "paginator.not_found",
			slog.String("status", "skip"),
			slog.Int64("chat_id", ev.ChatID),
			slog.Int("message_id", ev.MessageID),
			slog.Int64("user_id", ev.UserID),
		)
		return MessageRef{}, err
	}
	page, err := ParsePage(ev.Data)
	if err != nil {
		return MessageRef{}, err
	}
	return p.Navigate(ctx, m, page)
}
